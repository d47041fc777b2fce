package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/reskit/reskit/pkg/codec"
	"github.com/reskit/reskit/pkg/resource"
)

// Mount registers one handler per api entry of res. Each handler decodes
// the request body into positional arguments, dispatches through CallAPI
// and writes the action result as JSON. The registry's error kinds map onto
// HTTP statuses here and nowhere else.
func Mount(r Router, res *resource.Resource) {
	for _, a := range res.APIs() {
		h := apiHandler(res, a)
		switch a.Method {
		case resource.MethodGet:
			r.Get(a.Route, h)
		case resource.MethodPost:
			r.Post(a.Route, h)
		case resource.MethodPut:
			r.Put(a.Route, h)
		case resource.MethodDelete:
			r.Delete(a.Route, h)
		default:
			r.Handle(string(a.Method), a.Route, h)
		}
	}
}

func apiHandler(res *resource.Resource, a resource.API) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		args, err := codec.DecodeArgs(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		out, err := res.CallAPI(r.Context(), a.Route, a.Method, args...)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		writeJSON(w, out, http.StatusOK)
	})
}

func statusFor(err error) int {
	var (
		actionNF *resource.ActionNotFoundError
		routeNF  *resource.RouteNotFoundError
		badVerb  *resource.MethodNotAllowedError
	)
	switch {
	case errors.As(err, &routeNF), errors.As(err, &actionNF):
		return http.StatusNotFound
	case errors.As(err, &badVerb):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	payload, err := codec.JSONStrict.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", codec.JSONStrict.ContentType())
	w.WriteHeader(status)
	if len(payload) > 0 {
		_, _ = w.Write(payload)
		return
	}
	_, _ = w.Write([]byte(`null`))
}
