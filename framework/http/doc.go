// Package http provides the request and response helpers used by the
// inspection handlers.
//
//	req := gohttp.NewRequest(r)
//	id := req.RouteParam("id")
//	scope := req.Query("scope")
//
//	res := gohttp.NewResponse(w)
//	res.Success(view)   // 200 {"data": ...}
//	res.FromError(err)  // 404 / 422 / 400 / 500 by error kind
package http
