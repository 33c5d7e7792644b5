package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/wayfinder/http/session"
	"github.com/xy-planning-network/wayfinder/logger"
)

// An Fn shapes the Response a Responder is building.
// An Fn that depends on another, like Param on Url, can return an error
// until the other applies; see Responder.build.
type Fn func(Responder, *Response) error

// A Response collects what Fn options set until a Responder writes it.
type Response struct {
	w http.ResponseWriter
	r *http.Request

	code  int
	data  any
	title string
	tmpls []string
	url   *url.URL
}

// Code sets the status code.
func Code(c int) Fn {
	return func(_ Responder, res *Response) error {
		res.code = c
		return nil
	}
}

// Data sets what Html renders or Json encodes.
func Data(d any) Fn {
	return func(_ Responder, res *Response) error {
		res.data = d
		return nil
	}
}

// Contact sets the data of an error page to msg, under a "Contact" key.
// An empty msg uses the message set by WithContactErrMsg, or session.DefaultErrMsg.
func Contact(msg string) Fn {
	return func(doer Responder, res *Response) error {
		shown := msg
		if shown == "" {
			shown = doer.contactMsg()
		}

		res.data = map[string]any{"Contact": shown}
		return nil
	}
}

// Err logs e, if any, and sets the status code to http.StatusInternalServerError.
func Err(e error) Fn {
	return func(doer Responder, res *Response) error {
		if e != nil {
			doer.log.Error(e.Error(), &logger.LogContext{Error: e, Request: res.r})
		}

		res.code = http.StatusInternalServerError
		return nil
	}
}

// Flash adds f to the session's flashes.
// Without a session in the request, ErrNotFound returns.
func Flash(f session.Flash) Fn {
	return func(doer Responder, res *Response) error {
		s, err := doer.Session(res.r.Context())
		if err != nil {
			return err
		}

		return s.SetFlash(res.w, res.r, f)
	}
}

// GenericErr logs e like Err and flashes the message set by WithContactErrMsg,
// or session.DefaultErrMsg.
func GenericErr(e error) Fn {
	return func(doer Responder, res *Response) error {
		if err := Err(e)(doer, res); err != nil {
			return err
		}

		return Flash(session.Flash{Class: session.FlashError, Msg: doer.contactMsg()})(doer, res)
	}
}

// Header sets key to val in the response's headers.
func Header(key, val string) Fn {
	return func(_ Responder, res *Response) error {
		if res.w == nil {
			return fmt.Errorf("%w: no http.ResponseWriter", ErrMissingData)
		}

		res.w.Header().Set(key, val)
		return nil
	}
}

// Layout puts the layout template first, once.
// Without WithLayoutTemplate, ErrBadConfig returns.
func Layout() Fn {
	return func(doer Responder, res *Response) error {
		layout := doer.tmpl.layout
		switch {
		case layout == "":
			return fmt.Errorf("%w: no layout tmpl", ErrBadConfig)
		case len(res.tmpls) > 0 && res.tmpls[0] == layout:
			return nil
		}

		res.tmpls = append([]string{layout}, res.tmpls...)
		return nil
	}
}

// NotFound renders the not found template within the layout with http.StatusNotFound.
// Without WithLayoutTemplate and WithNotFoundTemplate, ErrBadConfig returns.
func NotFound() Fn {
	return func(doer Responder, res *Response) error {
		if doer.tmpl.notFound == "" {
			return fmt.Errorf("%w: no not found tmpl", ErrBadConfig)
		}

		if err := Layout()(doer, res); err != nil {
			return err
		}

		res.tmpls = append(res.tmpls, doer.tmpl.notFound)
		res.code = http.StatusNotFound
		return nil
	}
}

// Param adds key=val to the query of the URL Url sets.
// Before Url applies, ErrMissingData returns.
func Param(key, val string) Fn {
	return func(_ Responder, res *Response) error {
		if res.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := res.url.Query()
		q.Add(key, val)
		res.url.RawQuery = q.Encode()
		return nil
	}
}

// Tmpls adds templates to render after any already added.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, res *Response) error {
		res.tmpls = append(res.tmpls, fps...)
		return nil
	}
}

// Title sets the page title in place of the one set by WithTitle.
// An empty title changes nothing.
func Title(title string) Fn {
	return func(_ Responder, res *Response) error {
		if title != "" {
			res.title = title
		}

		return nil
	}
}

// ToRoot points the URL at a copy of the root URL set by WithRootUrl, if any.
func ToRoot() Fn {
	return func(doer Responder, res *Response) error {
		if doer.root != nil {
			u := *doer.root
			res.url = &u
		}

		return nil
	}
}

// Url sets the URL Redirect sends the client to.
// u must be absolute or an absolute path; otherwise, ErrInvalid returns.
func Url(u string) Fn {
	return func(_ Responder, res *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}

		res.url = parsed
		return nil
	}
}

// Warn logs msg and flashes it as a warning.
func Warn(msg string) Fn {
	return func(doer Responder, res *Response) error {
		doer.log.Warn(msg, &logger.LogContext{Request: res.r})
		return Flash(session.Flash{Class: session.FlashWarning, Msg: msg})(doer, res)
	}
}
