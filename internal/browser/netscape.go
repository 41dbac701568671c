package browser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

const (
	netscapeHeader    = "# Netscape HTTP Cookie File"
	netscapeAltHeader = "# HTTP Cookie File"
	httpOnlyPrefix    = "#HttpOnly_"
)

// DecodeNetscape parses every entry of a Netscape cookies.txt stream,
// including expired ones and ones for any domain. Comment lines are skipped;
// "#HttpOnly_" lines are entries with the HttpOnly flag. Malformed lines are
// reported to log and skipped.
func DecodeNetscape(r io.Reader, log logger.Logger) ([]Cookie, error) {
	var cookies []Cookie
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		httpOnly := strings.HasPrefix(line, httpOnlyPrefix)
		if httpOnly {
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			log.Warning("netscape: line %d: expected 7 fields, got %d", lineNo, len(fields))
			continue
		}
		exp, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			log.Warning("netscape: line %d: invalid expiry %q", lineNo, fields[4])
			continue
		}
		c := Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		}
		if exp > 0 {
			c.Expiry = time.Unix(exp, 0)
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read Netscape cookies: %w", err)
	}
	return cookies, nil
}

// EncodeNetscape writes cookies in Netscape format, header first. Session
// cookies get expiry 0.
func EncodeNetscape(w io.Writer, cookies []Cookie) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, netscapeHeader)
	fmt.Fprintln(bw, "# Written by cookiestore. Edit at your own risk.")
	fmt.Fprintln(bw)
	for _, c := range cookies {
		var exp int64
		if !c.Expiry.IsZero() {
			exp = c.Expiry.Unix()
		}
		prefix := ""
		if c.HttpOnly {
			prefix = httpOnlyPrefix
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(bw, "%s%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			prefix, c.Domain, flag(strings.HasPrefix(c.Domain, ".")), path,
			flag(c.Secure), exp, c.Name, c.Value)
	}
	return bw.Flush()
}

func flag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// ReadNetscape returns the live cookies for domain from a Netscape file on fs.
func ReadNetscape(fs afero.Fs, path, domain string, log logger.Logger) ([]Cookie, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open Netscape cookie file: %w", err)
	}
	defer f.Close()
	cookies, err := DecodeNetscape(f, log)
	if err != nil {
		return nil, err
	}
	return filter(cookies, domain, now()), nil
}
