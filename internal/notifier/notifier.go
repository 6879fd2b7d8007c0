package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"
	"time"

	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MsgSent       = "郵件發送成功"
	MsgAuthFailed = "SMTP驗證錯誤，請檢查寄件Email和應用程式密碼。"
	msgFailedFmt  = "郵件發送失敗: %s"

	DefaultSMTPHost = "smtp.gmail.com"
	DefaultSMTPPort = 587
)

type Role string

const (
	RoleCoach   Role = "coach"
	RolePatient Role = "patient"
)

//go:generate mockgen -source=$GOFILE -destination=notifier_mocks_test.go -package=notifier_test

// MailSender is the part of *mail.Client the notifier needs.
type MailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// ClientFactory opens an authenticated client for one delivery.
type ClientFactory func(host string, port int, username, password string) (MailSender, error)

type SendParams struct {
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
	PatientID      string
	PDFPath        string
	Role           Role
}

type Result struct {
	Recipient Role   `json:"recipient"`
	Status    bool   `json:"status"`
	Message   string `json:"message"`
}

type Notifier struct {
	host      string
	port      int
	newClient ClientFactory
}

func New(host string, port int) *Notifier {
	return NewWithFactory(host, port, DefaultClientFactory)
}

func NewWithFactory(host string, port int, factory ClientFactory) *Notifier {
	if host == "" {
		host = DefaultSMTPHost
	}
	if port == 0 {
		port = DefaultSMTPPort
	}
	return &Notifier{
		host:      host,
		port:      port,
		newClient: factory,
	}
}

func DefaultClientFactory(host string, port int, username, password string) (MailSender, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Send delivers the report email. Failures are reported in the Result, never as an error.
func (n *Notifier) Send(ctx context.Context, params SendParams) Result {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notifier.send")
	defer span.End()
	span.SetAttributes(attribute.String("role", string(params.Role)))

	err := n.send(ctx, params)
	if err == nil {
		log.Debugf("report email for [%s] sent to %s", params.PatientID, params.Role)
		return Result{Recipient: params.Role, Status: true, Message: MsgSent}
	}

	span.RecordError(err)
	log.Errorf("send report email for [%s] to %s: %s", params.PatientID, params.Role, err)
	if IsAuthError(err) {
		return Result{Recipient: params.Role, Status: false, Message: MsgAuthFailed}
	}
	return Result{Recipient: params.Role, Status: false, Message: fmt.Sprintf(msgFailedFmt, err)}
}

func (n *Notifier) send(ctx context.Context, params SendParams) error {
	msg, err := NewMessage(params)
	if err != nil {
		return err
	}

	client, err := n.newClient(n.host, n.port, params.SenderEmail, params.SenderPassword)
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// NewMessage builds the plain text message for the given role. The PDF is
// attached only if it is still on disk.
func NewMessage(params SendParams) (*mail.Msg, error) {
	subject, body := content(params.Role, params.PatientID)

	msg := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8))
	if err := msg.From(params.SenderEmail); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(params.RecipientEmail); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if pkg.FileExists(params.PDFPath) {
		msg.AttachFile(params.PDFPath)
	}
	return msg, nil
}

func content(role Role, patientID string) (subject, body string) {
	if role == RoleCoach {
		return fmt.Sprintf("學員 %s 的健康數據報告", patientID),
			fmt.Sprintf("親愛的教練：\n\n您好！這是學員 %s 的最新健康數據報告。\n\n請查看附件。\n\n健身數據分析系統", patientID)
	}
	return fmt.Sprintf("您的個人健康數據報告 - %s", patientID),
		"親愛的會員：\n\n您好！這是您的最新健康數據分析報告。\n\n請查看附件。\n\n健身數據分析系統"
}

// IsAuthError reports whether the relay rejected the credentials (534/535).
func IsAuthError(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return tpErr.Code == 534 || tpErr.Code == 535
	}
	return strings.Contains(err.Error(), "SMTP AUTH failed")
}
