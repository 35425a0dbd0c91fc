package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

// Inquiry is a contact form submission.
type Inquiry struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Phone     string `json:"phone" validate:"max=50"`
	Subject   string `json:"subject" validate:"max=255"`
	EventDate string `json:"event_date" validate:"max=50"`
	ShootType string `json:"shoot_type" validate:"max=100"`
	Budget    string `json:"budget" validate:"max=100"`
	Message   string `json:"message" validate:"max=5000"`
}

// Relay persists inquiries and forwards them by mail.
type Relay struct {
	store     store.ContactsStore
	mailer    Mailer
	from      string
	recipient string
	validate  *validator.Validate
	log       *zap.Logger
}

// NewRelay creates a Relay. mailer may be nil, in which case inquiries are
// only stored.
func NewRelay(s store.ContactsStore, mailer Mailer, from, recipient string, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		store:     s,
		mailer:    mailer,
		from:      from,
		recipient: recipient,
		validate:  validator.New(),
		log:       log,
	}
}

// Submit validates and stores the inquiry, then relays it.
// Validation failures wrap store.ErrInvalidInput.
func (r *Relay) Submit(ctx context.Context, in Inquiry) (*model.ContactMessage, error) {
	in = in.trimmed()
	if err := r.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrInvalidInput, describe(err))
	}

	msg := &model.ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Subject:   in.Subject,
		EventDate: in.EventDate,
		ShootType: in.ShootType,
		Budget:    in.Budget,
		Message:   in.Message,
	}
	if err := r.store.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if r.mailer == nil || r.recipient == "" {
		r.log.Debug("contact relay disabled, message stored only", zap.Uint("id", msg.ID))
		return msg, nil
	}

	if err := r.mailer.Send(ctx, composeMail(r.from, r.recipient, msg)); err != nil {
		r.log.Warn("failed to relay contact message",
			zap.Uint("id", msg.ID),
			zap.String("recipient", r.recipient),
			zap.Error(err))
	}
	return msg, nil
}

func (in Inquiry) trimmed() Inquiry {
	return Inquiry{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		EventDate: strings.TrimSpace(in.EventDate),
		ShootType: strings.TrimSpace(in.ShootType),
		Budget:    strings.TrimSpace(in.Budget),
		Message:   strings.TrimSpace(in.Message),
	}
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
