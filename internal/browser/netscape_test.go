package browser

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

func TestDecodeNetscape(t *testing.T) {
	exp := strconv.FormatInt(future(), 10)
	input := strings.Join([]string{
		"# Netscape HTTP Cookie File",
		"",
		".example.com\tTRUE\t/\tTRUE\t" + exp + "\tsid\tabc",
		"#HttpOnly_example.com\tFALSE\t/app\tFALSE\t0\ttok\txyz\r",
		"# a comment",
		"broken line",
		"example.com\tFALSE\t/\tFALSE\tsoon\tbad\tv",
	}, "\n")
	log := logger.NewMockLogger()

	cookies, err := DecodeNetscape(strings.NewReader(input), log)
	if err != nil {
		t.Fatalf("DecodeNetscape: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"sid", "tok"}) {
		t.Fatalf("names = %v", got)
	}
	if !cookies[0].Secure || cookies[0].HttpOnly || cookies[0].Domain != ".example.com" {
		t.Errorf("unexpected sid: %+v", cookies[0])
	}
	tok := cookies[1]
	if !tok.HttpOnly || !tok.Session() || tok.Path != "/app" || tok.Value != "xyz" {
		t.Errorf("unexpected tok: %+v", tok)
	}
	if len(log.WarningCalls) != 2 {
		t.Errorf("expected 2 warnings, got %v", log.WarningCalls)
	}
	for _, w := range log.WarningCalls {
		if strings.Contains(w, "abc") || strings.Contains(w, "xyz") {
			t.Errorf("warning leaks a value: %q", w)
		}
	}
}

func TestEncodeNetscape_RoundTrip(t *testing.T) {
	in := []Cookie{
		{Name: "sid", Value: "abc", Domain: ".example.com", Path: "/", Expiry: time.Unix(future(), 0), Secure: true},
		{Name: "tok", Value: "xyz", Domain: "example.com", HttpOnly: true},
	}
	var buf bytes.Buffer
	if err := EncodeNetscape(&buf, in); err != nil {
		t.Fatalf("EncodeNetscape: %v", err)
	}
	if !strings.HasPrefix(buf.String(), netscapeHeader+"\n") {
		t.Fatalf("missing header:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "#HttpOnly_example.com\tFALSE\t/\tFALSE\t0\ttok\txyz\n") {
		t.Fatalf("unexpected session line:\n%s", buf.String())
	}
	out, err := DecodeNetscape(&buf, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("DecodeNetscape: %v", err)
	}
	in[1].Path = "/"
	if len(out) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name || out[i].Value != in[i].Value || out[i].Domain != in[i].Domain ||
			out[i].Path != in[i].Path || out[i].Secure != in[i].Secure || out[i].HttpOnly != in[i].HttpOnly ||
			!out[i].Expiry.Equal(in[i].Expiry) {
			t.Errorf("cookie %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestReadNetscape_FiltersDomainAndExpiry(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := netscapeHeader + "\n" +
		".example.com\tTRUE\t/\tFALSE\t" + strconv.FormatInt(future(), 10) + "\ta\t1\n" +
		".example.com\tTRUE\t/\tFALSE\t" + strconv.FormatInt(past(), 10) + "\tb\t2\n" +
		"example.org\tFALSE\t/\tFALSE\t0\tc\t3\n" +
		"example.com\tFALSE\t/\tFALSE\t0\td\t4\n"
	_ = afero.WriteFile(fs, "/cookies.txt", []byte(content), 0644)

	cookies, err := ReadNetscape(fs, "/cookies.txt", "example.com", logger.NewNopLogger())
	if err != nil {
		t.Fatalf("ReadNetscape: %v", err)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Fatalf("names = %v", got)
	}
}

func TestReadNetscape_Missing(t *testing.T) {
	if _, err := ReadNetscape(afero.NewMemMapFs(), "/nope.txt", "example.com", logger.NewNopLogger()); err == nil {
		t.Fatal("expected error")
	}
}
