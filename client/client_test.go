package client

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-test/deep"
)

func TestGetFresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cc := r.Header.Get("Cache-Control"); cc != "no-cache" {
			t.Errorf("Unexpected Cache-Control: %q", cc)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := NewClient(0).GetFresh(context.Background(), srv.URL)
	if err != nil {
		t.Fatal("Failed to get:", err)
	}
	defer body.Close()

	b, _ := ioutil.ReadAll(body)
	if string(b) != "[]" {
		t.Fatalf("Unexpected body: %q", b)
	}
}

func TestUserAgent(t *testing.T) {
	var agent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
	}))
	defer srv.Close()

	c := NewClient(0)
	c.SetUserAgent("Test Board")

	body, err := c.GetFresh(context.Background(), srv.URL)
	if err != nil {
		t.Fatal("Failed to get:", err)
	}
	body.Close()

	if agent != "Test Board" {
		t.Fatalf("Unexpected user agent: %q", agent)
	}
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"form not found"}`))
	}))
	defer srv.Close()

	err := NewClient(0).PostForm(context.Background(), srv.URL, url.Values{"a": {"b"}}, nil)
	if err == nil {
		t.Fatal("Expected error")
	}

	if code := ErrGetStatusCode(err, 0); code != http.StatusUnprocessableEntity {
		t.Fatal("Unexpected status code:", code)
	}

	if err.Error() != "Unexpected status code 422: form not found" {
		t.Fatal("Unexpected error:", err)
	}
}

func TestPostMultipart(t *testing.T) {
	var got url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Error("Failed to parse multipart:", err)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Unexpected Accept: %q", accept)
		}
		got = url.Values(r.MultipartForm.Value)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var send = url.Values{
		"title":   {"Arc reactor"},
		"_gotcha": {""},
	}

	var resp struct {
		OK bool `json:"ok"`
	}

	if err := NewClient(0).PostMultipart(context.Background(), srv.URL, send, &resp); err != nil {
		t.Fatal("Failed to post:", err)
	}

	if !resp.OK {
		t.Fatal("Response not decoded")
	}

	if diff := deep.Equal(got, send); diff != nil {
		t.Fatal("Unexpected form:", diff)
	}
}
