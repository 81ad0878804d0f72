package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// LogAuditEvent logs a structured audit event for security and compliance.
// Every state-changing Firestore operation (profile and order writes,
// engagement toggles) emits one, success or failure.
//
// Args:
//   - action: The action performed (e.g., "create", "toggle_like", "mark_paid")
//   - userID: The user performing the action
//   - resourceType: The type of resource (e.g., "profile", "order", "reel")
//   - resourceID: The ID of the resource
//   - result: AuditSuccess or AuditFailure
//   - details: Optional additional details
func LogAuditEvent(
	ctx context.Context,
	action, userID, resourceType, resourceID, result string,
	details map[string]any,
) {
	logger := LoggerFromContext(ctx)

	logger.Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
