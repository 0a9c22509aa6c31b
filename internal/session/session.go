package session

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/store"
)

// DeriveID builds the actor id from role and email. There is no password or
// verification behind it; two logins with the same role and email are the
// same actor.
func DeriveID(role model.Role, email string) string {
	return string(role) + ":" + strings.ToLower(email)
}

// Manager holds the signed-in actor and persists it under a blob key so it
// survives restarts. It is not safe for concurrent use.
type Manager struct {
	blobs   store.Store
	key     string
	current *model.Actor
}

// NewManager restores the persisted actor, if any.
func NewManager(ctx context.Context, blobs store.Store, key string) *Manager {
	m := &Manager{blobs: blobs, key: key}

	var restored *model.Actor
	if store.ReadJSON(ctx, blobs, key, &restored) && restored != nil && restored.Role.Valid() {
		m.current = restored
		log.Info().Str("actor", restored.ID).Msg("session restored")
	}
	return m
}

// Current returns a copy of the signed-in actor, or nil.
func (m *Manager) Current() *model.Actor {
	if m.current == nil {
		return nil
	}
	a := *m.current
	return &a
}

// Login replaces the current actor. Name and email must be non-empty and the
// role must be owner or customer; otherwise nothing changes.
func (m *Manager) Login(ctx context.Context, role model.Role, name, email string) (model.Actor, model.Outcome) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := (credentials{Role: role, Name: name, Email: email}).Validate(); err != nil {
		return model.Actor{}, model.Rejected(model.ReasonInvalidInput, err.Error())
	}

	actor := model.Actor{
		ID:    DeriveID(role, email),
		Role:  role,
		Name:  name,
		Email: email,
	}
	m.current = &actor
	m.persist(ctx)
	return actor, model.Ok()
}

type credentials struct {
	Role  model.Role `json:"role"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Role,
			validation.Required.Error("role is required"),
			validation.In(model.RoleOwner, model.RoleCustomer).Error("role must be owner or customer"),
		),
		validation.Field(&c.Name, validation.Required.Error("name is required")),
		validation.Field(&c.Email, validation.Required.Error("email is required")),
	)
}

// Logout clears the current actor unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.current = nil
	m.persist(ctx)
}

func (m *Manager) persist(ctx context.Context) {
	if err := store.WriteJSON(ctx, m.blobs, m.key, m.current); err != nil {
		log.Warn().Err(err).Str("key", m.key).Msg("session write failed")
	}
}
