package audit_logs

import (
	"time"

	"importhub/internal/storage"

	"github.com/google/uuid"
)

const selectAuditLogsSQL = `
		SELECT
			al.id,
			al.user_id,
			al.workspace_id,
			al.project_id,
			al.message,
			al.created_at,
			u.email as user_email,
			w.name as workspace_name,
			p.name as project_name
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		LEFT JOIN workspaces w ON al.workspace_id = w.id
		LEFT JOIN projects p ON al.project_id = p.id`

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetGlobal(limit, offset int, beforeDate *time.Time) ([]*AuditLogDTO, error) {
	return r.query("", nil, limit, offset, beforeDate)
}

func (r *AuditLogRepository) GetByUser(
	userID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.user_id = ?", userID, limit, offset, beforeDate)
}

func (r *AuditLogRepository) GetByWorkspace(
	workspaceID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	return r.query("al.workspace_id = ?", workspaceID, limit, offset, beforeDate)
}

func (r *AuditLogRepository) CountGlobal(beforeDate *time.Time) (int64, error) {
	var count int64
	query := storage.GetDb().Model(&AuditLog{})

	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *AuditLogRepository) CountByWorkspace(workspaceID uuid.UUID, beforeDate *time.Time) (int64, error) {
	var count int64
	query := storage.GetDb().Model(&AuditLog{}).Where("workspace_id = ?", workspaceID)

	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *AuditLogRepository) query(
	condition string,
	conditionArg any,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	auditLogs := make([]*AuditLogDTO, 0)

	sql := selectAuditLogsSQL
	args := []any{}
	where := []string{}

	if condition != "" {
		where = append(where, condition)
		args = append(args, conditionArg)
	}

	if beforeDate != nil {
		where = append(where, "al.created_at < ?")
		args = append(args, *beforeDate)
	}

	for i, clause := range where {
		if i == 0 {
			sql += " WHERE " + clause
		} else {
			sql += " AND " + clause
		}
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&auditLogs).Error

	return auditLogs, err
}
