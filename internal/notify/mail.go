package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/config"
	"github.com/Leganyst/crew-platform/internal/model"
)

type JobLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
}

type TechnicianLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Technician, error)
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// MailNotifier пишет технику письмо о назначении.
type MailNotifier struct {
	jobs  JobLookup
	techs TechnicianLookup
	smtp  sender
	from  string
	loc   *time.Location
}

// NewMailNotifier настраивает SMTP-клиент по конфигу.
func NewMailNotifier(cfg config.SMTPConfig, jobs JobLookup, techs TechnicianLookup, loc *time.Location) (*MailNotifier, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return newMailNotifier(client, from, jobs, techs, loc), nil
}

func newMailNotifier(s sender, from string, jobs JobLookup, techs TechnicianLookup, loc *time.Location) *MailNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &MailNotifier{jobs: jobs, techs: techs, smtp: s, from: from, loc: loc}
}

func (m *MailNotifier) NotifyAssignment(ctx context.Context, n Notice) error {
	job, err := m.jobs.GetByID(ctx, n.JobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", n.JobID, err)
	}
	tech, err := m.techs.GetByID(ctx, n.TechnicianID)
	if err != nil {
		return fmt.Errorf("load technician %s: %w", n.TechnicianID, err)
	}

	msg, err := m.buildMessage(job, tech, n.Role)
	if err != nil {
		return err
	}
	if err := m.smtp.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", tech.Email, err)
	}
	return nil
}

func (m *MailNotifier) buildMessage(job *model.Job, tech *model.Technician, role string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("failed to set from: %w", err)
	}
	if err := msg.To(tech.Email); err != nil {
		return nil, fmt.Errorf("failed to set to: %w", err)
	}

	msg.Subject(fmt.Sprintf("Nueva asignacion: %s", job.Title))

	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", tech.Name)
	fmt.Fprintf(&b, "Has sido asignado a \"%s\" como %s.\n", job.Title, role)
	fmt.Fprintf(&b, "Fecha: %s\n", calendar.FormatRange(calendar.TimeRange{Start: job.StartTime, End: job.EndTime}, m.loc))
	if job.Location != nil {
		fmt.Fprintf(&b, "Lugar: %s\n", *job.Location)
	}
	msg.SetBodyString(gomail.TypeTextPlain, b.String())

	return msg, nil
}
