package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/token" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken(""))

	tok, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("expected token tok-1, got %q", tok)
	}

	_, err = c.Login(context.Background(), "alice", "wrong")
	if !IsAuth(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	var authErr *AuthError
	errors.As(err, &authErr)
	if authErr.Detail != "Invalid credentials" {
		t.Errorf("expected server detail to propagate, got %q", authErr.Detail)
	}
}

func TestSignupValidationShapes(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		kind ValidationKind
	}{
		{"field detail", 422, `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`, ValidationField},
		{"string detail", 400, `{"detail":"Username already registered"}`, ValidationMessage},
		{"bare msg", 400, `{"msg":"Bad signup"}`, ValidationMessage},
		{"garbage", 400, `nope`, ValidationUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, staticToken(""))
			_, err := c.Signup(context.Background(), "bob", "not-an-email", "pw")
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Kind != tc.kind {
				t.Errorf("expected kind %s, got %s", tc.kind, ve.Kind)
			}
			if tc.kind == ValidationField {
				if len(ve.Fields) != 1 || ve.Fields[0].Loc != "email" {
					t.Errorf("expected one field error on email, got %+v", ve.Fields)
				}
			}
		})
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok-xyz"))
	if _, err := c.ListDocuments(context.Background()); err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id":"662f1","filename":"contract.pdf","created_at":"2025-03-01T10:00:00Z"},
			{"id":"662f2","filename":"nda.pdf","created_at":"2025-03-02T11:30:00Z"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	docs, err := c.ListDocuments(context.Background())
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Filename != "contract.pdf" || docs[0].ID != "662f1" {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
}

func TestUploadRejectsNonPDFBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClient(srv.URL, staticToken("t"))
	_, err := c.Upload(context.Background(), path)
	var ue *UploadError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if ue.Reason != "Only PDF files are allowed" {
		t.Errorf("unexpected reason %q", ue.Reason)
	}
	if called {
		t.Error("server must not be contacted for a non-PDF upload")
	}
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "contract.pdf" {
			t.Errorf("expected filename contract.pdf, got %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "File processed successfully"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "contract.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClient(srv.URL, staticToken("t"))
	msg, err := c.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if msg != "File processed successfully" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestFetchBinaryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Document not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	_, err := c.FetchBinary(context.Background(), "gone.pdf", "abc")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFetchBinary(t *testing.T) {
	payload := []byte("%PDF-1.4 raw bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/document/contract.pdf/662f1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	got, err := c.FetchBinary(context.Background(), "contract.pdf", "662f1")
	if err != nil {
		t.Fatalf("FetchBinary failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch: got %q", got)
	}
}

func TestArtifactEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/summarize/contract.pdf/662f1":
			if r.Method != http.MethodPost {
				t.Errorf("summarize must be POST, got %s", r.Method)
			}
			json.NewEncoder(w).Encode(map[string]string{"summary": "A lease agreement."})
		case "/clauses/contract.pdf/662f1":
			if r.Method != http.MethodGet {
				t.Errorf("clauses must be GET, got %s", r.Method)
			}
			w.Write([]byte(`{"clauses":[{"title":"Termination","content":"Either party may..."}]}`))
		case "/chat/contract.pdf/662f1":
			var in struct {
				Query string `json:"query"`
			}
			json.NewDecoder(r.Body).Decode(&in)
			if in.Query != "What is the termination clause?" {
				t.Errorf("unexpected query %q", in.Query)
			}
			json.NewEncoder(w).Encode(map[string]string{"response": "Clause 9 covers termination."})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	ctx := context.Background()

	summary, err := c.GetSummary(ctx, "contract.pdf", "662f1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary != "A lease agreement." {
		t.Errorf("unexpected summary %q", summary)
	}

	clauses, err := c.ExtractClauses(ctx, "contract.pdf", "662f1")
	if err != nil {
		t.Fatalf("ExtractClauses failed: %v", err)
	}
	if len(clauses) != 1 || clauses[0].Title != "Termination" {
		t.Errorf("unexpected clauses %+v", clauses)
	}

	reply, err := c.Chat(ctx, "contract.pdf", "662f1", "What is the termination clause?")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "Clause 9 covers termination." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestRateLimitClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Daily limit reached"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	_, err := c.GetSummary(context.Background(), "contract.pdf", "662f1")
	if !IsRateLimit(err) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Shut down before calling

	c := NewClient(srv.URL, staticToken("t"))
	_, err := c.ListDocuments(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestRenameAndDelete(t *testing.T) {
	var sawRename, sawDelete bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/rename/662f1":
			var in struct {
				NewName string `json:"new_name"`
			}
			json.NewDecoder(r.Body).Decode(&in)
			if in.NewName != "lease.pdf" {
				t.Errorf("unexpected new name %q", in.NewName)
			}
			sawRename = true
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case r.Method == http.MethodDelete && r.URL.Path == "/delete/contract.pdf/662f1":
			sawDelete = true
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	if err := c.Rename(context.Background(), "662f1", "lease.pdf"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if err := c.Delete(context.Background(), "contract.pdf", "662f1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !sawRename || !sawDelete {
		t.Error("expected both rename and delete to reach the server")
	}
}
