package pretty

import "fmt"

// FormatSuccess returns the line printed after input was written to output.
func (s *Styles) FormatSuccess(input, output string) string {
	return fmt.Sprintf("%s '%s' to '%s'\n",
		s.Success.Render("Successfully converted"),
		s.FilePath.Render(input),
		s.FilePath.Render(output),
	)
}

// FormatFailure returns the line printed when input could not be converted.
func (s *Styles) FormatFailure(input string, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf("%s %s: %s\n",
		s.Failure.Render("Error converting"),
		s.FilePath.Render(input),
		s.Message.Render(msg),
	)
}
