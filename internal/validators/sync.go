package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
)

// Field names accepted by [SyncValidator.Validate].
const (
	FieldQueryID     = "query_id"
	FieldAuthorID    = "author_id"
	FieldTitle       = "title"
	FieldPredicate   = "predicate"
	FieldMsg         = "msg"
	FieldUserID      = "user_id"
	FieldClientID    = "client_id"
	FieldClientBuild = "client_build"
	FieldVersions    = "versions"
	FieldScopes      = "scopes"
	FieldIDs         = "ids"
)

const (
	maxTitleRunes    = 255
	maxPredicateSize = 16 << 10
	maxClientIDSize  = 255
)

// SyncValidator validates saved queries, hellos and change summaries.
type SyncValidator struct{}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Query:
		return v.validateQuery(value, fields...)
	case *models.Query:
		return v.validateQuery(*value, fields...)

	case models.HelloRequest:
		return v.validateHello(value, fields...)
	case *models.HelloRequest:
		return v.validateHello(*value, fields...)

	case models.ChangeSummary:
		return v.validateSummary(value, fields...)
	case *models.ChangeSummary:
		return v.validateSummary(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncValidator) validateQuery(q models.Query, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQueryID, FieldAuthorID, FieldTitle, FieldPredicate}
	}

	for _, field := range fields {
		switch field {
		case FieldQueryID:
			if q.ID == uuid.Nil {
				return ErrInvalidQueryID
			}
		case FieldAuthorID:
			if q.AuthorID <= 0 {
				return ErrInvalidAuthorID
			}
		case FieldTitle:
			title := strings.TrimSpace(q.Title)
			if title == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(title) > maxTitleRunes {
				return ErrTitleTooLong
			}
		case FieldPredicate:
			predicate := strings.TrimSpace(q.Predicate)
			if predicate == "" {
				return ErrEmptyPredicate
			}
			if len(predicate) > maxPredicateSize {
				return ErrPredicateTooLong
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func (v *SyncValidator) validateHello(h models.HelloRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMsg, FieldUserID, FieldClientID, FieldClientBuild, FieldVersions}
	}

	for _, field := range fields {
		switch field {
		case FieldMsg:
			if h.Msg != models.MessageHello {
				return ErrNotHello
			}
		case FieldUserID:
			if h.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldClientID:
			if strings.TrimSpace(h.ClientID) == "" {
				return ErrEmptyClientID
			}
			if len(h.ClientID) > maxClientIDSize {
				return ErrClientIDTooLong
			}
		case FieldClientBuild:
			if h.ClientBuild < 0 {
				return ErrInvalidClientBuild
			}
		case FieldVersions:
			if h.Versions == nil {
				continue
			}
			if err := validateScopes(h.Versions.Repositories); err != nil {
				return fmt.Errorf("repositories: %w", err)
			}
			if err := validateScopes(h.Versions.Organizations); err != nil {
				return fmt.Errorf("organizations: %w", err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}

func validateScopes(scopes []models.ScopeVersion) error {
	for _, s := range scopes {
		if s.ID <= 0 || s.Version < 0 {
			return fmt.Errorf("%w: id %d version %d", ErrInvalidScope, s.ID, s.Version)
		}
	}
	return nil
}

func (v *SyncValidator) validateSummary(s models.ChangeSummary, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScopes, FieldIDs}
	}

	for _, field := range fields {
		switch field {
		case FieldScopes:
			if s.IsEmpty() {
				return ErrEmptySummary
			}
		case FieldIDs:
			for _, ids := range [][]int64{s.UserIDs(), s.OrganizationIDs(), s.RepositoryIDs()} {
				// ids are sorted, so the smallest comes first
				if len(ids) > 0 && ids[0] <= 0 {
					return fmt.Errorf("%w: %d", ErrInvalidEntityID, ids[0])
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}
	return nil
}
