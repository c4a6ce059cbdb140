package server

import (
	"mime"
	"net/http"
	"strings"
)

// resourceQuery is the optional filter accepted by GET /resources.
type resourceQuery struct {
	Roles  []string `form:"role"`
	Needs  []string `form:"need"`
	Search string   `form:"q"`
}

func (q *resourceQuery) empty() bool {
	return len(q.Roles) == 0 && len(q.Needs) == 0 && strings.TrimSpace(q.Search) == ""
}

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// decodeCredentials reads a login body sent either as JSON or as a regular
// form post.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (*credentials, error) {
	creds := new(credentials)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := decodeJSON(w, r, creds); err != nil {
			return nil, err
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		if err := decoder.Decode(creds, r.PostForm); err != nil {
			return nil, err
		}
	}

	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

type passwordChange struct {
	Password string `json:"password"`
}

type newUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
