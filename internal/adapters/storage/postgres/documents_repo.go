package postgres

import (
	"context"
	"database/sql"

	"doggy-daycare/internal/domain/documents"
)

type documentRepo struct {
	s *Store
}

const documentColumns = `id, name, description, content, requires_signature, created_at`

func scanDocument(row rowScanner) (documents.Document, error) {
	var d documents.Document
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Content, &d.RequiresSignature, &d.CreatedAt)
	return d, err
}

func (r *documentRepo) Create(ctx context.Context, d documents.Document) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, d.ID, d.Name, d.Description, d.Content, d.RequiresSignature, d.CreatedAt)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err != nil {
		return documents.Document{}, mapErr(err)
	}
	return d, nil
}

func (r *documentRepo) List(ctx context.Context) ([]documents.Document, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY name, seq`)
	return collect(rows, err, scanDocument)
}

const assignmentSelect = `
	SELECT a.id, a.document_id, a.client_id, a.status, a.due_date, a.signed_at,
		a.captured_data, a.created_at, a.updated_at, COALESCE(d.name, '')
	FROM document_assignments a
	LEFT JOIN documents d ON d.id = a.document_id`

func scanAssignment(row rowScanner) (documents.Assignment, error) {
	var a documents.Assignment
	var status string
	var due, signed sql.NullTime
	var data jsonMap
	err := row.Scan(
		&a.ID, &a.DocumentID, &a.ClientID, &status, &due, &signed,
		&data, &a.CreatedAt, &a.UpdatedAt, &a.DocumentName,
	)
	a.Status = documents.Status(status)
	a.DueDate = nullTime(due)
	a.SignedAt = nullTime(signed)
	a.CapturedData = data
	return a, err
}

// CreateAssignment: documento inexistente => storage.ErrNotFound (FK).
func (r *documentRepo) CreateAssignment(ctx context.Context, a documents.Assignment) error {
	return exec(ctx, r.s.q(ctx), `
		INSERT INTO document_assignments (
			id, document_id, client_id, status, due_date, signed_at,
			captured_data, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID, a.DocumentID, a.ClientID, string(a.Status), toNullTime(a.DueDate), toNullTime(a.SignedAt),
		attrs(a.CapturedData), a.CreatedAt, a.UpdatedAt,
	)
}

func (r *documentRepo) UpdateAssignment(ctx context.Context, a documents.Assignment) error {
	return mustAffect(r.s.q(ctx).ExecContext(ctx, `
		UPDATE document_assignments
		SET status = $2, due_date = $3, signed_at = $4, captured_data = $5, updated_at = $6
		WHERE id = $1
	`, a.ID, string(a.Status), toNullTime(a.DueDate), toNullTime(a.SignedAt), attrs(a.CapturedData), a.UpdatedAt))
}

func (r *documentRepo) GetAssignment(ctx context.Context, id string) (documents.Assignment, error) {
	row := r.s.q(ctx).QueryRowContext(ctx, assignmentSelect+` WHERE a.id = $1`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return documents.Assignment{}, mapErr(err)
	}
	return a, nil
}

func (r *documentRepo) ListAssignments(ctx context.Context, clientID string) ([]documents.Assignment, error) {
	rows, err := r.s.q(ctx).QueryContext(ctx, assignmentSelect+`
		WHERE a.client_id = $1
		ORDER BY a.seq
	`, clientID)
	return collect(rows, err, scanAssignment)
}
