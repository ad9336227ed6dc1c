package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/MKhiriev/go-clinic-client/internal/service"
	"github.com/MKhiriev/go-clinic-client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrInvalidInput, arg)
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func printUser(w io.Writer, user models.User) {
	fmt.Fprintf(w, "ID:        %d\n", user.ID)
	fmt.Fprintf(w, "Name:      %s\n", user.FullName())
	fmt.Fprintf(w, "Email:     %s\n", user.Email)
	fmt.Fprintf(w, "Role:      %s\n", user.Role)
	if user.Phone != nil {
		fmt.Fprintf(w, "Phone:     %s\n", *user.Phone)
	}
	if user.Specialty != nil {
		fmt.Fprintf(w, "Specialty: %s\n", *user.Specialty)
	}
}

func printPatient(w io.Writer, p models.Patient) {
	fmt.Fprintf(w, "ID:         %d\n", p.ID)
	fmt.Fprintf(w, "Name:       %s\n", p.FullName())
	fmt.Fprintf(w, "Birth date: %s\n", p.BirthDate)
	fmt.Fprintf(w, "Sex:        %s\n", p.Sex)
	fmt.Fprintf(w, "Phone:      %s\n", p.Phone)
	fmt.Fprintf(w, "Email:      %s\n", p.Email)
	fmt.Fprintf(w, "Address:    %s\n", p.Address)
	fmt.Fprintf(w, "Status:     %s\n", p.Status)
}
