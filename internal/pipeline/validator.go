package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/store"
)

type Validator interface {
	Validate(ctx context.Context, job *models.Job, res *models.Result) (bool, string)
}

// OutputValidator rejects failed executions and empty outputs, and re-reads
// any produced PDF to make sure the operation emitted a well-formed file.
// Operations on a password-protected document produce protected output, so
// the re-read uses the password stored with the job's document.
type OutputValidator struct {
	Store *store.DocumentStore
}

func (v *OutputValidator) Validate(ctx context.Context, job *models.Job, res *models.Result) (bool, string) {
	if res.Error != "" {
		return false, "execution error returned"
	}
	if res.Output == nil {
		return false, "empty output"
	}
	if m, ok := res.Output.(map[string]any); ok {
		if b64, ok := m["pdf_base64"].(string); ok {
			pdf, err := base64.StdEncoding.DecodeString(b64)
			if err != nil {
				return false, "produced PDF is not valid base64"
			}
			if _, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), v.conf(job)); err != nil {
				return false, "produced PDF fails validation: " + err.Error()
			}
		}
	}
	return true, "ok"
}

func (v *OutputValidator) conf(job *models.Job) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if v.Store != nil {
		if doc, ok := v.Store.Get(job.DocumentID); ok && doc.Password != "" {
			conf.UserPW = doc.Password
			conf.OwnerPW = doc.Password
		}
	}
	return conf
}
