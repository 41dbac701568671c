package browser

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

// Roots are the per-user directories browser profiles live under.
type Roots struct {
	Home string
	// AppData and LocalAppData are the Windows %APPDATA% and %LOCALAPPDATA%.
	AppData      string
	LocalAppData string
}

// Browser lists where one browser may keep its cookie store.
type Browser struct {
	Name string
	// ProfileInis are profiles.ini candidates for Firefox-family browsers;
	// the store is cookies.sqlite in the default profile.
	ProfileInis []string
	// CookieFiles are direct store candidates for Chromium-family browsers.
	CookieFiles []string
}

type geckoDirs struct {
	name    string
	unix    []string
	darwin  string
	windows string
}

type chromiumDirs struct {
	name    string
	unix    string
	darwin  string
	windows string
}

// Priority order: Firefox family first, then Chromium family.
var (
	geckoFamily = []geckoDirs{
		{"Firefox", []string{".mozilla/firefox", "snap/firefox/common/.mozilla/firefox"}, "Library/Application Support/Firefox", "Mozilla/Firefox"},
		{"LibreWolf", []string{".librewolf"}, "Library/Application Support/librewolf", "LibreWolf"},
	}
	chromiumFamily = []chromiumDirs{
		{"Chrome", ".config/google-chrome", "Library/Application Support/Google/Chrome", "Google/Chrome/User Data"},
		{"Chromium", ".config/chromium", "Library/Application Support/Chromium", "Chromium/User Data"},
		{"Edge", ".config/microsoft-edge", "Library/Application Support/Microsoft Edge", "Microsoft/Edge/User Data"},
		{"Brave", ".config/BraveSoftware/Brave-Browser", "Library/Application Support/BraveSoftware/Brave-Browser", "BraveSoftware/Brave-Browser/User Data"},
	}
)

var (
	goos      = runtime.GOOS
	profileFs = afero.NewOsFs()
	userRoots = func() Roots {
		home, _ := os.UserHomeDir()
		return Roots{
			Home:         home,
			AppData:      os.Getenv("APPDATA"),
			LocalAppData: os.Getenv("LOCALAPPDATA"),
		}
	}
)

func under(root, rel string) string {
	if root == "" {
		return ""
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

// KnownBrowsers returns the browsers looked for on goos, in priority order.
// Browsers whose root directory is unknown are left out.
func KnownBrowsers(goos string, r Roots) []Browser {
	var out []Browser
	for _, g := range geckoFamily {
		var dirs []string
		switch goos {
		case "windows":
			dirs = []string{under(r.AppData, g.windows)}
		case "darwin":
			dirs = []string{under(r.Home, g.darwin)}
		default:
			for _, d := range g.unix {
				dirs = append(dirs, under(r.Home, d))
			}
		}
		b := Browser{Name: g.name}
		for _, d := range dirs {
			if d != "" {
				b.ProfileInis = append(b.ProfileInis, filepath.Join(d, "profiles.ini"))
			}
		}
		if len(b.ProfileInis) > 0 {
			out = append(out, b)
		}
	}
	for _, c := range chromiumFamily {
		var base string
		switch goos {
		case "windows":
			base = under(r.LocalAppData, c.windows)
		case "darwin":
			base = under(r.Home, c.darwin)
		default:
			base = under(r.Home, c.unix)
		}
		if base == "" {
			continue
		}
		profile := filepath.Join(base, "Default")
		out = append(out, Browser{
			Name: c.name,
			CookieFiles: []string{
				filepath.Join(profile, "Network", "Cookies"),
				filepath.Join(profile, "Cookies"),
			},
		})
	}
	return out
}

// BrowserNames lists the names Discover accepts.
func BrowserNames() []string {
	var names []string
	for _, g := range geckoFamily {
		names = append(names, g.name)
	}
	for _, c := range chromiumFamily {
		names = append(names, c.name)
	}
	return names
}

// defaultProfile returns the default profile directory named by a Firefox
// profiles.ini, or "" when the file is missing or names none. An [Install*]
// Default= entry wins over a [Profile*] section marked Default=1.
func defaultProfile(fs afero.Fs, ini string) string {
	f, err := fs.Open(ini)
	if err != nil {
		return ""
	}
	defer f.Close()

	base := filepath.Dir(ini)
	resolve := func(p string) string {
		p = filepath.FromSlash(p)
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	var (
		install, marked string
		section         string
		path            string
		isDefault       bool
	)
	closeProfile := func() {
		if strings.HasPrefix(section, "Profile") && isDefault && marked == "" && path != "" {
			marked = resolve(path)
		}
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			closeProfile()
			section = line[1 : len(line)-1]
			path, isDefault = "", false
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch {
		case strings.HasPrefix(section, "Install") && key == "Default" && install == "":
			install = resolve(val)
		case strings.HasPrefix(section, "Profile") && key == "Path":
			path = val
		case strings.HasPrefix(section, "Profile") && key == "Default":
			isDefault = val == "1"
		}
	}
	closeProfile()
	if install != "" {
		return install
	}
	return marked
}

// stores returns the cookie store files of b that exist on fs.
func (b Browser) stores(fs afero.Fs) []string {
	var found []string
	for _, ini := range b.ProfileInis {
		if dir := defaultProfile(fs, ini); dir != "" {
			if p := filepath.Join(dir, "cookies.sqlite"); fileExists(fs, p) {
				found = append(found, p)
			}
		}
	}
	for _, p := range b.CookieFiles {
		if fileExists(fs, p) {
			found = append(found, p)
		}
	}
	return found
}

func fileExists(fs afero.Fs, p string) bool {
	info, err := fs.Stat(p)
	return err == nil && !info.IsDir()
}

// Discover imports the cookies for domain from the first usable store of an
// installed browser. name picks one browser (case-insensitive); "" or "auto"
// tries them all in priority order. Stores that cannot be read are skipped.
func Discover(name, domain string, log logger.Logger) ([]Cookie, *Source, error) {
	candidates := KnownBrowsers(goos, userRoots())
	if name != "" && !strings.EqualFold(name, "auto") {
		var picked []Browser
		for _, b := range candidates {
			if strings.EqualFold(b.Name, name) {
				picked = append(picked, b)
			}
		}
		if len(picked) == 0 {
			return nil, nil, fmt.Errorf("unknown browser %q (known: %s)", name, strings.Join(BrowserNames(), ", "))
		}
		candidates = picked
	}
	tried := make([]string, 0, len(candidates))
	for _, b := range candidates {
		tried = append(tried, b.Name)
		for _, p := range b.stores(profileFs) {
			cookies, src, err := Import(p, domain, log)
			if err != nil {
				log.Warning("browser: skipping %s store %s: %v", b.Name, p, err)
				continue
			}
			src.Browser = b.Name
			return cookies, src, nil
		}
	}
	return nil, nil, fmt.Errorf("no browser cookie store found (tried %s)", strings.Join(tried, ", "))
}
