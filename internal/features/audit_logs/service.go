package audit_logs

import (
	"errors"
	"log/slog"
	"time"

	user_enums "importhub/internal/features/users/enums"
	user_models "importhub/internal/features/users/models"

	"github.com/google/uuid"
)

var (
	ErrOnlyAdminsCanViewGlobalLogs = errors.New("only administrators can view global audit logs")
	ErrInsufficientPermissions     = errors.New("insufficient permissions to view user audit logs")
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
	projectID *uuid.UUID,
) {
	auditLog := &AuditLog{
		UserID:      userID,
		WorkspaceID: workspaceID,
		ProjectID:   projectID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.auditLogRepository.Create(auditLog)
	if err != nil {
		s.logger.Error("failed to create audit log", "error", err)
		return
	}
}

func (s *AuditLogService) GetGlobalAuditLogs(
	user *user_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	if user.Role != user_enums.UserRoleAdmin {
		return nil, ErrOnlyAdminsCanViewGlobalLogs
	}

	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetGlobal(limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogRepository.CountGlobal(request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *AuditLogService) GetUserAuditLogs(
	targetUserID uuid.UUID,
	user *user_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	// Users can view their own logs, ADMIN can view any user's logs
	if user.Role != user_enums.UserRoleAdmin && user.ID != targetUserID {
		return nil, ErrInsufficientPermissions
	}

	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByUser(targetUserID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     int64(len(auditLogs)),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

// GetWorkspaceAuditLogs does no permission checks, callers must verify
// workspace access first.
func (s *AuditLogService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit, offset := normalizePage(request)

	auditLogs, err := s.auditLogRepository.GetByWorkspace(workspaceID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.auditLogRepository.CountByWorkspace(workspaceID, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func normalizePage(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	return limit, max(request.Offset, 0)
}
