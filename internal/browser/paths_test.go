package browser

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

func TestDefaultProfile(t *testing.T) {
	tests := []struct {
		name string
		ini  string
		want string
	}{
		{
			name: "install section wins",
			ini: "[Profile0]\nName=old\nPath=Profiles/old.default\nDefault=1\n\n" +
				"[Install4F96D1932A9F858E]\nDefault=Profiles/new.default-release\nLocked=1\n",
			want: "/ff/Profiles/new.default-release",
		},
		{
			name: "profile marked default",
			ini: "[General]\nStartWithLastProfile=1\n\n" +
				"[Profile0]\nName=a\nIsRelative=1\nPath=Profiles/a\n\n" +
				"[Profile1]\nName=b\nIsRelative=1\nPath=Profiles/b\nDefault=1\n",
			want: "/ff/Profiles/b",
		},
		{
			name: "last section marked default",
			ini:  "[Profile0]\nPath=Profiles/only\nDefault=1",
			want: "/ff/Profiles/only",
		},
		{
			name: "absolute profile path",
			ini:  "[Profile0]\nIsRelative=0\nPath=/data/firefox/work\nDefault=1\n",
			want: "/data/firefox/work",
		},
		{
			name: "comments and CRLF",
			ini:  "; written by hand\r\n[Profile0]\r\nPath=Profiles/x\r\nDefault=1\r\n",
			want: "/ff/Profiles/x",
		},
		{
			name: "no default",
			ini:  "[Profile0]\nPath=Profiles/a\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = afero.WriteFile(fs, "/ff/profiles.ini", []byte(tt.ini), 0644)
			if got := defaultProfile(fs, "/ff/profiles.ini"); got != filepath.FromSlash(tt.want) {
				t.Errorf("defaultProfile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultProfile_Missing(t *testing.T) {
	if got := defaultProfile(afero.NewMemMapFs(), "/nope/profiles.ini"); got != "" {
		t.Errorf("defaultProfile() = %q, want empty", got)
	}
}

func browserNames(bs []Browser) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

func TestKnownBrowsers_Order(t *testing.T) {
	want := []string{"Firefox", "LibreWolf", "Chrome", "Chromium", "Edge", "Brave"}
	roots := Roots{Home: "/home/u", AppData: `C:\Users\u\AppData\Roaming`, LocalAppData: `C:\Users\u\AppData\Local`}
	for _, goos := range []string{"linux", "darwin", "windows"} {
		if got := browserNames(KnownBrowsers(goos, roots)); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: browsers = %v, want %v", goos, got, want)
		}
	}
	if got := BrowserNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("BrowserNames() = %v", got)
	}
}

func TestKnownBrowsers_Linux(t *testing.T) {
	bs := KnownBrowsers("linux", Roots{Home: "/home/u"})
	ff := bs[0]
	wantIni := []string{
		filepath.Join("/home/u", ".mozilla", "firefox", "profiles.ini"),
		filepath.Join("/home/u", "snap", "firefox", "common", ".mozilla", "firefox", "profiles.ini"),
	}
	if !reflect.DeepEqual(ff.ProfileInis, wantIni) {
		t.Errorf("Firefox inis = %v", ff.ProfileInis)
	}
	chrome := bs[2]
	wantFiles := []string{
		filepath.Join("/home/u", ".config", "google-chrome", "Default", "Network", "Cookies"),
		filepath.Join("/home/u", ".config", "google-chrome", "Default", "Cookies"),
	}
	if !reflect.DeepEqual(chrome.CookieFiles, wantFiles) {
		t.Errorf("Chrome files = %v", chrome.CookieFiles)
	}
}

func TestKnownBrowsers_Darwin(t *testing.T) {
	bs := KnownBrowsers("darwin", Roots{Home: "/Users/u"})
	if want := filepath.Join("/Users/u", "Library", "Application Support", "Firefox", "profiles.ini"); bs[0].ProfileInis[0] != want {
		t.Errorf("Firefox ini = %q, want %q", bs[0].ProfileInis[0], want)
	}
	if want := filepath.Join("/Users/u", "Library", "Application Support", "Microsoft Edge", "Default", "Cookies"); bs[4].CookieFiles[1] != want {
		t.Errorf("Edge file = %q, want %q", bs[4].CookieFiles[1], want)
	}
}

func TestKnownBrowsers_Windows(t *testing.T) {
	bs := KnownBrowsers("windows", Roots{AppData: "/roaming", LocalAppData: "/local"})
	if want := filepath.Join("/roaming", "Mozilla", "Firefox", "profiles.ini"); bs[0].ProfileInis[0] != want {
		t.Errorf("Firefox ini = %q, want %q", bs[0].ProfileInis[0], want)
	}
	if want := filepath.Join("/local", "BraveSoftware", "Brave-Browser", "User Data", "Default", "Network", "Cookies"); bs[5].CookieFiles[0] != want {
		t.Errorf("Brave file = %q, want %q", bs[5].CookieFiles[0], want)
	}
}

func TestKnownBrowsers_MissingRoots(t *testing.T) {
	if bs := KnownBrowsers("windows", Roots{Home: "/home/u"}); len(bs) != 0 {
		t.Errorf("expected no browsers without APPDATA/LOCALAPPDATA, got %v", browserNames(bs))
	}
	if bs := KnownBrowsers("linux", Roots{}); len(bs) != 0 {
		t.Errorf("expected no browsers without a home, got %v", browserNames(bs))
	}
}

// fakeHome points discovery at a linux-style home directory under t.TempDir.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	origGoos, origRoots, origFs := goos, userRoots, profileFs
	goos = "linux"
	userRoots = func() Roots { return Roots{Home: home} }
	profileFs = afero.NewOsFs()
	t.Cleanup(func() { goos, userRoots, profileFs = origGoos, origRoots, origFs })
	return home
}

func firefoxProfile(t *testing.T, home string, rows []storeRow) string {
	t.Helper()
	ffDir := filepath.Join(home, ".mozilla", "firefox")
	profile := filepath.Join(ffDir, "Profiles", "abc.default-release")
	mkdir(t, profile)
	writeFile(t, filepath.Join(ffDir, "profiles.ini"),
		"[Install4F96D1932A9F858E]\nDefault=Profiles/abc.default-release\n")
	return makeFirefoxStore(t, profile, rows)
}

func chromiumProfile(t *testing.T, home string, rows []storeRow) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "chromium", "Default", "Network")
	mkdir(t, dir)
	return makeChromeStore(t, dir, rows)
}

func TestDiscover_Auto(t *testing.T) {
	home := fakeHome(t)
	path := firefoxProfile(t, home, []storeRow{{"a", "1", ".example.com", "/", future(), 0, 0}})
	chromiumProfile(t, home, []storeRow{{"c", "3", ".example.com", "/", future(), 0, 0}})

	for _, name := range []string{"", "auto", "AUTO"} {
		cookies, src, err := Discover(name, "example.com", logger.NewNopLogger())
		if err != nil {
			t.Fatalf("Discover(%q): %v", name, err)
		}
		if src.Browser != "Firefox" || src.Format != FormatFirefox || src.Path != path {
			t.Errorf("Discover(%q) source = %+v", name, src)
		}
		if got := names(cookies); !reflect.DeepEqual(got, []string{"a"}) {
			t.Errorf("Discover(%q) names = %v", name, got)
		}
	}
}

func TestDiscover_NamedBrowser(t *testing.T) {
	home := fakeHome(t)
	firefoxProfile(t, home, []storeRow{{"a", "1", ".example.com", "/", future(), 0, 0}})
	path := chromiumProfile(t, home, []storeRow{{"c", "3", ".example.com", "/", future(), 0, 0}})

	cookies, src, err := Discover("chromium", "example.com", logger.NewNopLogger())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if src.Browser != "Chromium" || src.Path != path {
		t.Errorf("source = %+v", src)
	}
	if got := names(cookies); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("names = %v", got)
	}
}

func TestDiscover_SkipsUnreadableStore(t *testing.T) {
	home := fakeHome(t)
	ffDir := filepath.Join(home, ".mozilla", "firefox")
	profile := filepath.Join(ffDir, "Profiles", "broken")
	mkdir(t, profile)
	writeFile(t, filepath.Join(ffDir, "profiles.ini"), "[Profile0]\nPath=Profiles/broken\nDefault=1\n")
	writeFile(t, filepath.Join(profile, "cookies.sqlite"), "not a database")
	chromiumProfile(t, home, []storeRow{{"c", "3", "example.com", "/", future(), 0, 0}})

	log := logger.NewMockLogger()
	_, src, err := Discover("", "example.com", log)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if src.Browser != "Chromium" {
		t.Errorf("browser = %q, want Chromium", src.Browser)
	}
	if len(log.WarningCalls) != 1 || !strings.Contains(log.WarningCalls[0], "Firefox") {
		t.Errorf("warnings = %v", log.WarningCalls)
	}
}

func TestDiscover_UnknownBrowser(t *testing.T) {
	fakeHome(t)
	_, _, err := Discover("netscape-navigator", "example.com", logger.NewNopLogger())
	if err == nil || !strings.Contains(err.Error(), "unknown browser") {
		t.Fatalf("err = %v", err)
	}
}

func TestDiscover_NothingFound(t *testing.T) {
	fakeHome(t)
	_, _, err := Discover("", "example.com", logger.NewNopLogger())
	if err == nil || !strings.Contains(err.Error(), "Firefox, LibreWolf, Chrome") {
		t.Fatalf("err = %v", err)
	}
}

func TestDiscover_ProfileWithoutStore(t *testing.T) {
	home := fakeHome(t)
	ffDir := filepath.Join(home, ".mozilla", "firefox")
	mkdir(t, filepath.Join(ffDir, "Profiles", "empty"))
	writeFile(t, filepath.Join(ffDir, "profiles.ini"), "[Profile0]\nPath=Profiles/empty\nDefault=1\n")
	if _, _, err := Discover("firefox", "example.com", logger.NewNopLogger()); err == nil {
		t.Fatal("expected error when the default profile has no cookies.sqlite")
	}
}
