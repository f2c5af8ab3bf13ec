package report

import "io"

type stubRenderer string

func (s stubRenderer) Format() string { return string(s) }

func (s stubRenderer) Render(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, string(s))
	return err
}
