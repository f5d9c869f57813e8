package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type checklistRepo struct {
	db *sqlx.DB
}

// NewChecklistRepo creates a new PostgreSQL-backed ChecklistRepository.
func NewChecklistRepo(db *sqlx.DB) port.ChecklistRepository {
	return &checklistRepo{db: db}
}

func (r *checklistRepo) CreateTemplate(ctx context.Context, tpl *domain.SOPTemplate, items []domain.SOPTemplateItem) error {
	tpl.ID = uuid.New()
	tpl.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("checklistRepo.CreateTemplate begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sop_templates (id, tenant_id, name, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tpl.ID, tpl.TenantID, tpl.Name, tpl.IsActive, tpl.CreatedAt)
	if err != nil {
		return fmt.Errorf("checklistRepo.CreateTemplate: %w", err)
	}

	for i := range items {
		item := &items[i]
		item.ID = uuid.New()
		item.TemplateID = tpl.ID
		item.TenantID = tpl.TenantID
		item.Position = i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO sop_template_items (id, template_id, tenant_id, position, label, photo_required)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.TemplateID, item.TenantID, item.Position, item.Label, item.PhotoRequired)
		if err != nil {
			return fmt.Errorf("checklistRepo.CreateTemplate items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("checklistRepo.CreateTemplate commit: %w", err)
	}
	return nil
}

func (r *checklistRepo) GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*domain.SOPTemplate, []domain.SOPTemplateItem, error) {
	var tpl domain.SOPTemplate
	err := r.db.GetContext(ctx, &tpl,
		"SELECT * FROM sop_templates WHERE id = $1 AND tenant_id = $2", templateID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrChecklistNotFound
		}
		return nil, nil, fmt.Errorf("checklistRepo.GetTemplate: %w", err)
	}

	var items []domain.SOPTemplateItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM sop_template_items WHERE template_id = $1 AND tenant_id = $2 ORDER BY position",
		templateID, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("checklistRepo.GetTemplate items: %w", err)
	}
	return &tpl, items, nil
}

func (r *checklistRepo) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]domain.SOPTemplate, error) {
	var templates []domain.SOPTemplate
	err := r.db.SelectContext(ctx, &templates,
		"SELECT * FROM sop_templates WHERE tenant_id = $1 AND is_active = TRUE ORDER BY name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("checklistRepo.ListTemplates: %w", err)
	}
	return templates, nil
}

func (r *checklistRepo) CreateChecklist(ctx context.Context, cl *domain.Checklist, items []domain.ChecklistItem) error {
	cl.ID = uuid.New()
	cl.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("checklistRepo.CreateChecklist begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO checklists (id, tenant_id, job_card_id, template_id, name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		cl.ID, cl.TenantID, cl.JobCardID, cl.TemplateID, cl.Name, cl.CreatedAt)
	if err != nil {
		return fmt.Errorf("checklistRepo.CreateChecklist: %w", err)
	}

	for i := range items {
		item := &items[i]
		item.ID = uuid.New()
		item.ChecklistID = cl.ID
		item.TenantID = cl.TenantID
		item.Position = i

		_, err = tx.ExecContext(ctx,
			`INSERT INTO checklist_items
			 (id, checklist_id, tenant_id, position, label, photo_required, status, photo_file_id, completed_by, completed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID, item.ChecklistID, item.TenantID, item.Position, item.Label,
			item.PhotoRequired, item.Status, item.PhotoFileID, item.CompletedBy, item.CompletedAt)
		if err != nil {
			return fmt.Errorf("checklistRepo.CreateChecklist items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("checklistRepo.CreateChecklist commit: %w", err)
	}
	return nil
}

func (r *checklistRepo) GetChecklist(ctx context.Context, tenantID, checklistID uuid.UUID) (*domain.Checklist, []domain.ChecklistItem, error) {
	var cl domain.Checklist
	err := r.db.GetContext(ctx, &cl,
		"SELECT * FROM checklists WHERE id = $1 AND tenant_id = $2", checklistID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrChecklistNotFound
		}
		return nil, nil, fmt.Errorf("checklistRepo.GetChecklist: %w", err)
	}

	var items []domain.ChecklistItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM checklist_items WHERE checklist_id = $1 AND tenant_id = $2 ORDER BY position",
		checklistID, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("checklistRepo.GetChecklist items: %w", err)
	}
	return &cl, items, nil
}

func (r *checklistRepo) ListByJobCard(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Checklist, error) {
	var checklists []domain.Checklist
	err := r.db.SelectContext(ctx, &checklists,
		"SELECT * FROM checklists WHERE tenant_id = $1 AND job_card_id = $2 ORDER BY created_at",
		tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("checklistRepo.ListByJobCard: %w", err)
	}
	return checklists, nil
}

func (r *checklistRepo) UpdateItem(ctx context.Context, item *domain.ChecklistItem) error {
	query := `UPDATE checklist_items SET status = $1, photo_file_id = $2,
		completed_by = $3, completed_at = $4 WHERE id = $5 AND tenant_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		item.Status, item.PhotoFileID, item.CompletedBy, item.CompletedAt,
		item.ID, item.TenantID)
	if err != nil {
		return fmt.Errorf("checklistRepo.UpdateItem: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrChecklistItemNotFound
	}
	return nil
}

func (r *checklistRepo) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM checklist_items WHERE id = $1 AND tenant_id = $2", itemID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("checklistRepo.GetItem: %w", err)
	}
	return &item, nil
}
