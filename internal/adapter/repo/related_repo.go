package repo

import (
	"context"

	"neolish/internal/domain"
	"neolish/internal/infra"
	"neolish/internal/sqlinline"
)

// RelatedRepositoryPG resolves outlines, style profiles, audiences and users.
type RelatedRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewRelatedRepository(sql infra.SQLExecutor) *RelatedRepositoryPG {
	return &RelatedRepositoryPG{sql: sql}
}

func (r *RelatedRepositoryPG) GetOutline(ctx context.Context, id string) (*domain.Outline, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectOutline, id)
	var o domain.Outline
	if err := row.Scan(&o.ID, &o.Title, &o.Content); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *RelatedRepositoryPG) GetStyleProfile(ctx context.Context, id string) (*domain.StyleProfile, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectStyleProfile, id)
	var p domain.StyleProfile
	if err := row.Scan(&p.ID, &p.Name, &p.AuthorInfo, &p.StyleFeatures, &p.SampleText); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *RelatedRepositoryPG) GetAudience(ctx context.Context, id string) (*domain.Audience, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAudience, id)
	var a domain.Audience
	if err := row.Scan(&a.ID, &a.Name, &a.Description); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *RelatedRepositoryPG) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUser, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.RelatedRepository = (*RelatedRepositoryPG)(nil)
