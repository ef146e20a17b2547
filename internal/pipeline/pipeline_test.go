package pipeline

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/ops"
	"github.com/example/pdf-workbench/internal/store"
)

type stubOp struct {
	name   string
	output any
	err    error
}

func (s stubOp) Name() string { return s.name }
func (s stubOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	return s.output, "ran " + s.name, s.err
}

func newExecutor(op ops.Operation) (*OpExecutor, *models.Document) {
	st := store.NewDocumentStore()
	doc := &models.Document{ID: "d1", Name: "a.pdf", Data: []byte("%PDF-1.4")}
	st.Put(doc)
	reg := ops.NewRegistry()
	reg.Register(op)
	return &OpExecutor{Registry: reg, Store: st}, doc
}

func TestExecuteSuccess(t *testing.T) {
	e, _ := newExecutor(stubOp{name: "noop", output: "hello"})
	job := &models.Job{ID: "j1", DocumentID: "d1", Op: "noop"}
	res, err := e.Execute(context.Background(), job)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error != "" || res.Output != "hello" {
		t.Errorf("result = %+v", res)
	}
	if res.Logs != "ran noop" {
		t.Errorf("logs = %q", res.Logs)
	}
}

func TestExecuteOpError(t *testing.T) {
	e, _ := newExecutor(stubOp{name: "noop", err: errors.New("boom")})
	job := &models.Job{ID: "j1", DocumentID: "d1", Op: "noop"}
	res, err := e.Execute(context.Background(), job)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error != "boom" {
		t.Errorf("error = %q, want boom", res.Error)
	}
}

func TestExecuteUnknownDocument(t *testing.T) {
	e, _ := newExecutor(stubOp{name: "noop", output: "x"})
	job := &models.Job{ID: "j1", DocumentID: "ghost", Op: "noop"}
	res, err := e.Execute(context.Background(), job)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error == "" {
		t.Error("missing document did not produce an error result")
	}
}

func TestExecuteUnknownOp(t *testing.T) {
	e, _ := newExecutor(stubOp{name: "noop", output: "x"})
	job := &models.Job{ID: "j1", DocumentID: "d1", Op: "nonsense"}
	res, err := e.Execute(context.Background(), job)
	if err != nil {
		t.Fatal(err)
	}
	if res.Error == "" {
		t.Error("unknown op did not produce an error result")
	}
}

func TestValidateRejectsErrorResult(t *testing.T) {
	v := &OutputValidator{}
	ok, _ := v.Validate(context.Background(), &models.Job{}, &models.Result{Error: "boom"})
	if ok {
		t.Error("error result passed validation")
	}
}

func TestValidateRejectsNilOutput(t *testing.T) {
	v := &OutputValidator{}
	ok, _ := v.Validate(context.Background(), &models.Job{}, &models.Result{})
	if ok {
		t.Error("nil output passed validation")
	}
}

func TestValidateAcceptsPlainOutput(t *testing.T) {
	v := &OutputValidator{}
	res := &models.Result{Output: map[string]any{"pages": 3}}
	ok, note := v.Validate(context.Background(), &models.Job{}, res)
	if !ok {
		t.Errorf("plain output rejected: %s", note)
	}
}

func TestValidateRejectsBadBase64(t *testing.T) {
	v := &OutputValidator{}
	res := &models.Result{Output: map[string]any{"pdf_base64": "!!! not base64 !!!"}}
	ok, _ := v.Validate(context.Background(), &models.Job{}, res)
	if ok {
		t.Error("invalid base64 passed validation")
	}
}

// protectedPDF builds a one-page PDF and encrypts it with password.
func protectedPDF(t *testing.T, password string) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(72, 72, "protected")
	var plain bytes.Buffer
	if err := pdf.Output(&plain); err != nil {
		t.Fatal(err)
	}
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	var enc bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(plain.Bytes()), &enc, conf); err != nil {
		t.Fatal(err)
	}
	return enc.Bytes()
}

func TestValidateProtectedOutputUsesStoredPassword(t *testing.T) {
	enc := protectedPDF(t, "secret")
	st := store.NewDocumentStore()
	st.Put(&models.Document{ID: "d1", Name: "locked.pdf", Data: enc, Password: "secret", Encrypted: true})

	job := &models.Job{ID: "j1", DocumentID: "d1", Op: "compress"}
	res := &models.Result{Output: map[string]any{
		"pdf_base64": base64.StdEncoding.EncodeToString(enc),
	}}

	v := &OutputValidator{Store: st}
	if ok, note := v.Validate(context.Background(), job, res); !ok {
		t.Fatalf("protected output rejected: %s", note)
	}

	// without the stored password the same output must not validate
	if ok, _ := (&OutputValidator{}).Validate(context.Background(), job, res); ok {
		t.Error("protected output passed validation without a password")
	}
}
