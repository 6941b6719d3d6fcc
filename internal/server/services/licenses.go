package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
)

// Approval is the outcome of approving a membership application.
type Approval struct {
	Message      string
	WhatsAppLink string
	PDFURL       string
}

// LicenseService adds approval to the licenses collection.
type LicenseService struct {
	*ContentService
	font []byte
}

type LicenseOption func(*LicenseService)

// WithCertificateFont renders certificates with the given TrueType font
// instead of the built-in Go font.
func WithCertificateFont(ttf []byte) LicenseOption {
	return func(s *LicenseService) { s.font = ttf }
}

func NewLicenseService(cs *ContentService, opts ...LicenseOption) *LicenseService {
	s := &LicenseService{ContentService: cs, font: goregular.TTF}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Approve issues the membership certificate, marks the application approved
// and builds the WhatsApp link announcing it.
func (s *LicenseService) Approve(ctx context.Context, id, baseURL string) (*Approval, error) {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := doc.String("name")
	fileName := "NEHRU_MLA_" + safeName(name) + ".pdf"
	pdf, err := certificatePDF(doc, s.font)
	if err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	p, err := s.media.Save(ctx, "licenses/generated", fileName, "application/pdf", pdf)
	if err != nil {
		return nil, fmt.Errorf("store certificate: %w", err)
	}
	pdfURL := strings.TrimRight(baseURL, "/") + p

	if _, err := s.docs.Update(ctx, id, models.Document{"is_approved": true, "license_pdf": pdfURL}); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Hello %s!\n\nYour Membership Card has been approved!\n\nDownload your certificate:\n%s\n\nThank you for joining the movement.", name, pdfURL)
	link := "https://wa.me/91" + doc.String("phone") + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")

	return &Approval{Message: "Approved successfully!", WhatsAppLink: link, PDFURL: pdfURL}, nil
}

func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	if strings.Trim(b.String(), "_") == "" {
		return "member"
	}
	return b.String()
}

// certificatePDF renders a one-page certificate naming the member. The
// member's name is also stored as the document title.
func certificatePDF(doc models.Document, font []byte) ([]byte, error) {
	name := doc.String("name")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Nehru Membership Card: "+name, true)
	pdf.SetSubject(name, true)
	pdf.SetCreator("nehruadmin", true)
	pdf.AddUTF8FontFromBytes("certificate", "", font)
	pdf.AddPage()

	pdf.SetFont("certificate", "", 24)
	pdf.CellFormat(0, 20, "Nehru Membership Card", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("certificate", "", 14)
	for _, l := range []string{
		"Name: " + name,
		"Phone: " + doc.String("phone"),
		"Aadhar: " + doc.String("aadhar_number"),
		"Address: " + doc.String("address"),
	} {
		pdf.MultiCell(0, 9, l, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
