package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
)

type profileMap map[uuid.UUID]*model.Profile

func (m profileMap) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	if p, ok := m[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	id := uuid.New()

	tok, exp, err := iss.Issue(id, model.ProfileRoleLogistics)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry must be in the future: %v", exp)
	}

	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := claims.ProfileUUID()
	if err != nil || got != id {
		t.Fatalf("profile id mismatch: %v %v", got, err)
	}
	if claims.Role != "logistics" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestIssuer_RejectsForeignAndExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	other := NewIssuer("another", time.Hour)

	tok, _, err := other.Issue(uuid.New(), model.ProfileRoleManagement)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}

	tok, _, err = iss.Issue(uuid.New(), model.ProfileRoleManagement)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := iss.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := iss.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must differ from password")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("password should match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("wrong password must not match")
	}
}

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	iss := NewIssuer("secret", time.Hour)
	p := &model.Profile{ID: uuid.New(), Name: "Marta", Email: "marta@example.com", Role: model.ProfileRoleManagement}
	store := profileMap{p.ID: p}

	s := NewSession()
	if s.State != StatePending {
		t.Fatalf("new session must be pending, got %v", s.State)
	}

	tok, _, _ := iss.Issue(p.ID, p.Role)
	if err := s.Resolve(ctx, iss, store, tok); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !s.Authenticated() || s.Profile.ID != p.ID {
		t.Fatalf("session should be authenticated as %s", p.ID)
	}
	if !s.HasRole(model.ProfileRoleManagement) {
		t.Fatalf("expected management role")
	}
	if s.HasRole(model.ProfileRoleTechnician) {
		t.Fatalf("technician role must not match")
	}

	s.SignOut()
	if s.State != StateAnonymous || s.Profile != nil {
		t.Fatalf("sign out must leave anonymous session")
	}
	if s.HasRole(model.ProfileRoleManagement) {
		t.Fatalf("anonymous session has no roles")
	}
}

func TestSession_ResolveFailures(t *testing.T) {
	ctx := context.Background()
	iss := NewIssuer("secret", time.Hour)

	s := NewSession()
	if err := s.Resolve(ctx, iss, profileMap{}, ""); err != nil {
		t.Fatalf("empty token is anonymous, got %v", err)
	}
	if s.State != StateAnonymous {
		t.Fatalf("expected anonymous, got %v", s.State)
	}

	tok, _, _ := iss.Issue(uuid.New(), model.ProfileRoleManagement)
	err := s.Resolve(ctx, iss, profileMap{}, tok)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for unknown profile, got %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("session must stay anonymous")
	}

	bad := &model.Profile{ID: uuid.New(), Role: "owner"}
	tok, _, _ = iss.Issue(bad.ID, bad.Role)
	if err := s.Resolve(ctx, iss, profileMap{bad.ID: bad}, tok); !errors.Is(err, calendar.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()).Authenticated() {
		t.Fatalf("context without session must be anonymous")
	}

	s := &Session{State: StateAuthenticated, Profile: &calendar.ValidatedProfile{ID: uuid.New(), Role: model.ProfileRoleLogistics}}
	ctx := WithSession(context.Background(), s)
	if FromContext(ctx) != s {
		t.Fatalf("session not propagated")
	}
}
