package server

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// NominationForm carries the fields of a free-form snack suggestion.
// Latitude and Longitude stay nil when the corresponding field was
// left blank so that optional coordinates survive a round trip.
type NominationForm struct {
	Name         string
	Location     string
	RawLatitude  string
	RawLongitude string
	Latitude     *float64
	Longitude    *float64
}

func bindNominationForm(c echo.Context) *NominationForm {
	return &NominationForm{
		Name:         strings.TrimSpace(c.FormValue("snack_name")),
		Location:     strings.TrimSpace(c.FormValue("snack_location")),
		RawLatitude:  strings.TrimSpace(c.FormValue("latitude")),
		RawLongitude: strings.TrimSpace(c.FormValue("longitude")),
	}
}

// Validate parses the raw coordinate fields and returns every problem
// found, so the page can show them all at once.
func (f *NominationForm) Validate() []string {
	var errs []string

	if f.Name == "" {
		errs = append(errs, "Snack name is required.")
	} else if len(f.Name) > 200 {
		errs = append(errs, "Snack name must be at most 200 characters.")
	}

	if f.Location == "" {
		errs = append(errs, "Purchase location is required.")
	} else if len(f.Location) > 50 {
		errs = append(errs, "Purchase location must be at most 50 characters.")
	}

	f.Latitude = nil
	f.Longitude = nil

	if f.RawLatitude != "" {
		lat, err := strconv.ParseFloat(f.RawLatitude, 64)
		switch {
		case err != nil:
			errs = append(errs, "Latitude must be a number.")
		case lat < -90 || lat > 90:
			errs = append(errs, "Latitude must be on interval [-90, 90].")
		default:
			f.Latitude = &lat
		}
	}

	if f.RawLongitude != "" {
		lng, err := strconv.ParseFloat(f.RawLongitude, 64)
		switch {
		case err != nil:
			errs = append(errs, "Longitude must be a number.")
		case lng < -180 || lng > 180:
			errs = append(errs, "Longitude must be on interval [-180, 180].")
		default:
			f.Longitude = &lng
		}
	}

	if (f.RawLatitude == "") != (f.RawLongitude == "") {
		errs = append(errs, "Latitude and longitude must be either both provided or both omitted.")
	}

	return errs
}
