package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"anhthu_server/importer"
	"anhthu_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendImportReport mails the import run summary to the operator. A missing
// operator address skips the mail without error, so the import command works
// without email configured.
func (es *EmailService) SendImportReport(report *importer.Report) error {
	if es.cfg.Email.OperatorEmail == "" || es.cfg.Email.ApiKey == "" {
		es.logger.Debug("Operator email not configured, skipping import report")
		return nil
	}

	subject := fmt.Sprintf("Catalog import finished: %d products", report.ProductsImported)
	if report.NeedsReview() {
		subject = fmt.Sprintf("Catalog import needs review: %d errors, %d ambiguous images",
			report.RowErrors, report.ImagesAmbiguous)
	}

	return es.SendEmail([]string{es.cfg.Email.OperatorEmail}, subject, importReportBody(report))
}

func importReportBody(report *importer.Report) string {
	var skipped string
	if len(report.SkippedFiles) > 0 {
		skipped = fmt.Sprintf(`<p>Skipped source files:</p><ul><li>%s</li></ul>`,
			strings.Join(report.SkippedFiles, "</li><li>"))
	}

	return fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				table { border-collapse: collapse; width: 100%%; }
				td { padding: 8px; border-bottom: 1px solid #ddd; }
				.warn { color: #c0392b; }
			</style>
		</head>
		<body>
			<div class="container">
				<h2>Catalog import summary</h2>
				<table>
					<tr><td>Products imported</td><td>%d</td></tr>
					<tr><td>Categories created</td><td>%d</td></tr>
					<tr><td>Option images matched</td><td>%d</td></tr>
					<tr><td>Option images without match</td><td>%d</td></tr>
					<tr><td class="warn">Option images ambiguous</td><td>%d</td></tr>
					<tr><td class="warn">Row errors</td><td>%d</td></tr>
					<tr><td>Translation failures</td><td>%d</td></tr>
					<tr><td>Duration</td><td>%s</td></tr>
				</table>
				%s
			</div>
		</body>
		</html>`,
		report.ProductsImported,
		report.CategoriesCreated,
		report.ImagesMatched,
		report.ImagesNoMatch,
		report.ImagesAmbiguous,
		report.RowErrors,
		report.TranslationFailures,
		report.Duration.Round(time.Millisecond),
		skipped,
	)
}
