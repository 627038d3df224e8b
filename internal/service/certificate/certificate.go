package certificate

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kkarthika293/Learn-Edge/internal/clients/email"
	"github.com/kkarthika293/Learn-Edge/internal/config"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type mailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// CertificateService renders completion certificates to a local directory and
// mails them out. Filenames are derived from the username; an existing file is
// never overwritten, a numeric suffix is appended instead.
type CertificateService struct {
	log  logger.Log
	mail mailSender
	dir  string
}

func NewCertificateService(l logger.Log, mail mailSender, cfg config.Certificates) *CertificateService {
	return &CertificateService{
		log:  l,
		mail: mail,
		dir:  cfg.Dir,
	}
}

// Issue renders the certificate PDF, stores it under the configured directory
// and emails it to the user as an attachment. It returns the path of the
// written file.
func (s *CertificateService) Issue(ctx context.Context, user *models.User, courseName string) (string, error) {
	content, err := render(user.Username, courseName)
	if err != nil {
		return "", fmt.Errorf("failed to render certificate: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create certificates dir: %w", err)
	}

	path := s.resolvePath(user.Username)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write certificate: %w", err)
	}

	msg := email.Message{
		ToName:  user.Username,
		ToEmail: user.Email,
		Subject: "Your Course Completion Certificate",
		Body:    fmt.Sprintf("Congratulations %s! Your certificate for %q is attached.", user.Username, courseName),
		Attachments: []email.Attachment{{
			Filename:    filepath.Base(path),
			ContentType: "application/pdf",
			Content:     content,
		}},
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send certificate email: %w", err)
	}

	s.log.Info("certificate issued", "user", user.Username, "path", path)
	return path, nil
}

// Find returns the path of the user's most recently issued certificate, or an
// empty string when none exists.
func (s *CertificateService) Find(username string) string {
	base := filepath.Join(s.dir, username+"_certificate")
	last := ""
	if _, err := os.Stat(base + ".pdf"); err == nil {
		last = base + ".pdf"
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d.pdf", base, i)
		if _, err := os.Stat(candidate); err != nil {
			break
		}
		last = candidate
	}
	return last
}

// resolvePath picks <username>_certificate.pdf, falling back to _1, _2 and so
// on until a free name is found.
func (s *CertificateService) resolvePath(username string) string {
	base := filepath.Join(s.dir, username+"_certificate")
	path := base + ".pdf"
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = fmt.Sprintf("%s_%d.pdf", base, i)
	}
}

func serialNumber() string {
	var sb strings.Builder
	for i := 0; i < 13; i++ {
		fmt.Fprintf(&sb, "%d", rand.IntN(10))
	}
	return sb.String()
}

func render(username, courseName string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, w-20, h-20, "D")

	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetY(45)
	pdf.CellFormat(0, 15, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetY(75)
	pdf.CellFormat(0, 10, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 15, username, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, courseName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetY(h - 60)
	pdf.CellFormat(0, 8, "Issued on "+time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Certificate No. "+serialNumber(), "", 1, "C", false, 0, "")

	pdf.SetY(h - 35)
	pdf.Line(40, h-30, 110, h-30)
	pdf.Line(w-110, h-30, w-40, h-30)
	pdf.SetY(h - 28)
	pdf.SetX(40)
	pdf.CellFormat(70, 8, "Instructor", "", 0, "C", false, 0, "")
	pdf.SetX(w - 110)
	pdf.CellFormat(70, 8, "Director", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
