package storage

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestSampleObjectName(t *testing.T) {
	at := time.UnixMilli(1714554000000)
	got := SampleObjectName("tr-1:A", "../clip.wav", at)
	if got != "samples/tr-1:A/1714554000000-clip.wav" {
		t.Fatalf("unexpected object name %q", got)
	}
	if strings.Contains(SampleObjectName("a/b", "x.wav", at), "a/b/") {
		t.Fatalf("voice id must not create nested paths")
	}
}

func TestRewriteHost(t *testing.T) {
	signed, _ := url.Parse("http://minio:9000/voice-samples/samples/v1/clip.wav?X-Amz-Signature=abc")

	if got := rewriteHost(signed, ""); got != signed.String() {
		t.Fatalf("expected unchanged url, got %s", got)
	}
	want := "https://files.example.com/voice-samples/samples/v1/clip.wav?X-Amz-Signature=abc"
	if got := rewriteHost(signed, "https://files.example.com"); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
