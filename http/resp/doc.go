/*
Package resp writes responses to HTTP requests: HTML pages, JSON and redirects.

An app configures one Responder with ResponderOptFn options
and each handler shapes its response with Fn options:

	rp := resp.NewResponder(resp.WithParser(p), resp.WithLayoutTemplate("tmpl/layout.tmpl"))

	err := rp.Html(w, r, resp.Layout(), resp.Tmpls(view), resp.Title(doc.Title()), resp.Data(page))
	err = rp.Json(w, r, resp.Data(route))
	err = rp.Redirect(w, r, resp.Url("/files"))

HTML pages render with the flashes waiting in the session middleware.InjectSession adds to the request.
*/
package resp
