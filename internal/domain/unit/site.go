package unit

import (
	"fmt"
	"strings"
)

// Site is where maintenance and repairs take place
type Site int

const (
	SiteField Site = iota
	SiteMobileBase
	SiteBay
	SiteFacility
	SiteFactory
)

var siteNames = map[Site]string{
	SiteField:      "In the Field",
	SiteMobileBase: "Field Workshop",
	SiteBay:        "Transport Bay",
	SiteFacility:   "Maintenance Facility",
	SiteFactory:    "Factory",
}

var siteModifiers = map[Site]int{
	SiteField:      2,
	SiteMobileBase: 1,
	SiteBay:        0,
	SiteFacility:   -2,
	SiteFactory:    -4,
}

func (s Site) IsValid() bool {
	_, ok := siteNames[s]
	return ok
}

// Name is the display name, "Unknown" for out-of-range codes
func (s Site) Name() string {
	if name, ok := siteNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Modifier is the target number adjustment for work done at this site
func (s Site) Modifier() int {
	return siteModifiers[s]
}

func (s Site) String() string {
	return s.Name()
}

// ParseSite accepts a site code or a display name, ignoring case
func ParseSite(v string) (Site, error) {
	for site, name := range siteNames {
		if strings.EqualFold(v, name) || v == fmt.Sprint(int(site)) {
			return site, nil
		}
	}
	return SiteBay, fmt.Errorf("unknown site %q", v)
}
