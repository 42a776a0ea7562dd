package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/thepetra/petra/internal/metrics"
	"github.com/thepetra/petra/internal/notify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NoteEmailDisabled is returned with accepted submissions when no mailer is configured.
const NoteEmailDisabled = "Email service not configured"

// Store persists submissions.
type Store interface {
	InsertLead(ctx context.Context, form, name, email, phone string, payload []byte) (string, error)
}

// SheetSink mirrors submissions to a spreadsheet.
type SheetSink interface {
	Append(ctx context.Context, row any) error
}

// Options configures a Service. Every dependency is optional.
type Options struct {
	Mailer        notify.Mailer
	Texter        notify.Texter
	Store         Store
	WaitlistSheet SheetSink
	LeadsSheet    SheetSink
	AdminAddress  string
	Logger        *zap.Logger
}

// Result is the outcome of an accepted submission.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Note    string `json:"note,omitempty"`
	ID      string `json:"id,omitempty"`
}

// Service accepts lead form submissions.
type Service struct {
	opts     Options
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, validate: validator.New(), logger: logger, now: time.Now}
}

// submission is a validated form ready to be stored and announced.
type submission struct {
	form     Form
	formName string
	name     string
	email    string
	phone    string
	payload  any
	product  productInfo

	adminSubject    string
	adminTemplate   string
	customerSubject string
	customerTpl     string
	sms             string
	sheet           SheetSink
	sheetRow        any

	message string
}

// SubmitWaitlist records a waitlist signup.
func (s *Service) SubmitWaitlist(ctx context.Context, w Waitlist) (*Result, error) {
	return s.submit(ctx, &submission{
		form:            FormWaitlist,
		formName:        "Subscription Waitlist",
		name:            w.Name,
		email:           w.Email,
		phone:           w.Phone,
		payload:         w,
		adminSubject:    fmt.Sprintf("🎉 New Waitlist Signup – %s Plan", w.Plan),
		adminTemplate:   "waitlist_admin.html",
		customerSubject: fmt.Sprintf("You're on the waitlist for %s Plan! 🎉", w.Plan),
		customerTpl:     "waitlist_customer.html",
		sheet:           s.opts.WaitlistSheet,
		sheetRow:        map[string]string{"name": w.Name, "email": w.Email, "phone": w.Phone, "plan": w.Plan},
		message:         "Successfully joined the waitlist",
	})
}

// SubmitPetRequest records a request to source a pet.
func (s *Service) SubmitPetRequest(ctx context.Context, p PetRequest) (*Result, error) {
	sub := &submission{
		form:          FormPetRequest,
		formName:      "Pet Request",
		name:          p.FullName,
		email:         p.Email,
		phone:         p.Phone,
		payload:       p,
		adminSubject:  fmt.Sprintf("New Pet Request – %s", p.PetType),
		adminTemplate: "pet_request_admin.html",
		sms:           fmt.Sprintf("Hi %s, Pet.Ra's received your %s request. Our team will contact you within 24 hours.", p.FullName, p.PetType),
		sheet:         s.opts.LeadsSheet,
		message:       "Pet request received successfully",
	}
	sub.sheetRow = sheetRow(sub)
	return s.submit(ctx, sub)
}

// SubmitPetFinder records a pet finder request.
func (s *Service) SubmitPetFinder(ctx context.Context, p PetFinder) (*Result, error) {
	sub := &submission{
		form:            FormPetFinder,
		formName:        "Pet Finder",
		name:            p.Name,
		email:           p.Email,
		phone:           p.Phone,
		payload:         p,
		adminSubject:    fmt.Sprintf("New Pet Finder Request from %s", p.Name),
		adminTemplate:   "pet_finder_admin.html",
		customerSubject: "We received your Pet Finder request!",
		customerTpl:     "pet_finder_customer.html",
		sheet:           s.opts.LeadsSheet,
		message:         "Pet finder request received successfully",
	}
	sub.sheetRow = sheetRow(sub)
	return s.submit(ctx, sub)
}

// SubmitProductNotify records a product launch notification request.
func (s *Service) SubmitProductNotify(ctx context.Context, p ProductNotify) (*Result, error) {
	info := productFor(p.Product)
	sub := &submission{
		form:            FormProductNotify,
		formName:        "Product Notification",
		email:           p.Email,
		payload:         p,
		product:         info,
		adminSubject:    fmt.Sprintf("%s New Product Interest – %s", info.Emoji, p.Product),
		adminTemplate:   "product_admin.html",
		customerSubject: fmt.Sprintf("We'll notify you when %s products launch! 🛍️", p.Product),
		customerTpl:     "product_customer.html",
		sheet:           s.opts.LeadsSheet,
		message:         fmt.Sprintf("You'll be notified when %s products launch", p.Product),
	}
	sub.sheetRow = sheetRow(sub)
	return s.submit(ctx, sub)
}

func sheetRow(sub *submission) map[string]any {
	return map[string]any{
		"form":  string(sub.form),
		"name":  sub.name,
		"email": sub.email,
		"phone": sub.phone,
		"data":  sub.payload,
	}
}

func (s *Service) submit(ctx context.Context, sub *submission) (*Result, error) {
	if err := s.validate.Struct(sub.payload); err != nil {
		return nil, toValidationError(err)
	}

	log := s.logger.With(zap.String("form", string(sub.form)))
	metrics.LeadsSubmitted.WithLabelValues(string(sub.form)).Inc()
	res := &Result{Success: true, Message: sub.message}

	if s.opts.Store != nil {
		payload, err := json.Marshal(sub.payload)
		if err == nil {
			res.ID, err = s.opts.Store.InsertLead(ctx, string(sub.form), sub.name, sub.email, sub.phone, payload)
		}
		if err != nil {
			log.Error("failed to store lead", zap.Error(err))
		}
	}

	if s.opts.Mailer == nil {
		log.Info("lead received (no email sent)", zap.String("email", sub.email))
		res.Note = NoteEmailDisabled
	} else if err := s.mail(ctx, sub); err != nil {
		return nil, &DeliveryError{Form: sub.form, Cause: err}
	}

	if s.opts.Texter != nil && sub.sms != "" && sub.phone != "" {
		if err := s.opts.Texter.Text(ctx, sub.phone, sub.sms); err != nil {
			log.Warn("failed to send SMS confirmation", zap.Error(err))
		}
	}

	if sub.sheet != nil {
		if err := sub.sheet.Append(ctx, sub.sheetRow); err != nil {
			log.Warn("failed to forward lead to sheet", zap.Error(err))
		}
	}

	log.Info("lead accepted", zap.String("id", res.ID))
	return res, nil
}

// mail sends the admin notification and the customer confirmation concurrently.
func (s *Service) mail(ctx context.Context, sub *submission) error {
	data := mailData{
		Form:        sub.payload,
		FormName:    sub.formName,
		Product:     sub.product,
		Admin:       s.opts.AdminAddress,
		SubmittedAt: submittedAt(s.now()),
	}

	adminHTML, err := render(sub.adminTemplate, data)
	if err != nil {
		return err
	}
	var customerHTML string
	if sub.customerTpl != "" && sub.email != "" {
		if customerHTML, err = render(sub.customerTpl, data); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.opts.Mailer.Send(gctx, notify.Message{
			To:      []string{s.opts.AdminAddress},
			ReplyTo: sub.email,
			Subject: sub.adminSubject,
			HTML:    adminHTML,
			Kind:    string(sub.form) + "-admin",
		})
	})
	if customerHTML != "" {
		g.Go(func() error {
			return s.opts.Mailer.Send(gctx, notify.Message{
				To:      []string{sub.email},
				ReplyTo: s.opts.AdminAddress,
				Subject: sub.customerSubject,
				HTML:    customerHTML,
				Kind:    string(sub.form) + "-customer",
			})
		})
	}
	return g.Wait()
}

func toValidationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ValidationError{Field: ve[0].Field(), Tag: ve[0].Tag()}
	}
	return &ValidationError{Field: "request", Tag: "invalid"}
}
