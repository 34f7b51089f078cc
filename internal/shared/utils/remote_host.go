package utils

import (
	"net/url"
	"strings"
)

// HostAllowList holds the external hosts trusted to serve remote images.
type HostAllowList struct {
	hosts map[string]struct{}
}

func NewHostAllowList(hosts []string) HostAllowList {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = struct{}{}
		}
	}
	return HostAllowList{hosts: set}
}

// Permits reports whether an image reference may be served as is.
// Relative paths and storage keys always pass. URLs that name a host pass
// only when the scheme is http(s) and the host is trusted.
func (l HostAllowList) Permits(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	if u.Scheme != "" && u.Scheme != "https" && u.Scheme != "http" {
		return false
	}
	if u.Host == "" {
		return u.Scheme == ""
	}
	_, ok := l.hosts[strings.ToLower(u.Hostname())]
	return ok
}
