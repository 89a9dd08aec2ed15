package api

import "net/http"

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	keys, err := decodeKeys(w, r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeResult(w, s.reader.Compare(r.Context(), keys))
}
