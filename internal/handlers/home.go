package handlers

import "net/http"

// Home renders the landing page: the site intro plus the section menu.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	data := s.pageData(r, pageHome, s.cfg.Title)
	s.render(w, http.StatusOK, data)
}
