package slurm

import (
	"strconv"
	"strings"
)

// Pool is one license pool as reported by the scheduler.
type Pool struct {
	// Name is the product.feature identifier, without the server type.
	Name       string
	ServerType string
	Total      int
	Used       int
	Free       int
	Reserved   int
	Remote     bool
}

// QueueEntry is one job from the scheduler queue listing.
type QueueEntry struct {
	JobID          string
	RuntimeSeconds int
	State          string
}

// LicenseBooking is one license requirement attached to a scheduler job.
type LicenseBooking struct {
	ProductFeature string
	ServerType     string
	Quantity       int
}

// ParseLicensePools parses `scontrol show lic` output. A pool spans two
// lines: a LicenseName=product.feature@type line followed by a counters
// line. The returned map is keyed by product.feature.
func ParseLicensePools(raw string) map[string]Pool {
	pools := make(map[string]Pool)
	var current *Pool

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if name, ok := strings.CutPrefix(line, "LicenseName="); ok {
			pool := Pool{Name: name}
			if at := strings.LastIndexByte(name, '@'); at >= 0 {
				pool.Name = name[:at]
				pool.ServerType = name[at+1:]
			}
			current = &pool
			continue
		}

		if current == nil || !strings.HasPrefix(line, "Total=") {
			continue
		}
		for _, field := range strings.Fields(line) {
			key, value, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			switch key {
			case "Total":
				current.Total, _ = strconv.Atoi(value)
			case "Used":
				current.Used, _ = strconv.Atoi(value)
			case "Free":
				current.Free, _ = strconv.Atoi(value)
			case "Reserved":
				current.Reserved, _ = strconv.Atoi(value)
			case "Remote":
				current.Remote = value == "yes"
			}
		}
		pools[current.Name] = *current
		current = nil
	}
	return pools
}

// ParseQueue parses squeue output with one `job_id|elapsed|state` line per
// job. A line that does not split into exactly three fields, or whose
// elapsed column is not a scheduler time string, is a SqueueParseError.
func ParseQueue(raw string) ([]QueueEntry, error) {
	var entries []QueueEntry
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != 3 {
			return nil, &SqueueParseError{Line: line}
		}

		seconds, err := ParseElapsed(fields[1])
		if err != nil {
			return nil, &SqueueParseError{Line: line}
		}

		entries = append(entries, QueueEntry{
			JobID:          strings.TrimSpace(fields[0]),
			RuntimeSeconds: seconds,
			State:          strings.TrimSpace(fields[2]),
		})
	}
	return entries, nil
}

// ParseElapsed converts a scheduler elapsed time string of the form
// [[days-]hours:]minutes:seconds into integer seconds.
func ParseElapsed(s string) (int, error) {
	s = strings.TrimSpace(s)

	days := 0
	if before, after, ok := strings.Cut(s, "-"); ok {
		d, err := strconv.Atoi(before)
		if err != nil {
			return 0, &SqueueParseError{Line: s}
		}
		days = d
		s = after
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, &SqueueParseError{Line: s}
	}

	total := days * 86400
	multipliers := []int{1, 60, 3600}
	for i := 0; i < len(parts); i++ {
		v, err := strconv.Atoi(parts[len(parts)-1-i])
		if err != nil {
			return 0, &SqueueParseError{Line: s}
		}
		total += v * multipliers[i]
	}
	return total, nil
}

// ParseJobLicenses extracts the Licenses= field from `scontrol show job`
// output. Entries look like product.feature@type:4; the quantity defaults
// to 1 and the server type may be absent. Returns false when the output
// carries no Licenses= field at all.
func ParseJobLicenses(raw string) ([]LicenseBooking, bool) {
	value, found := "", false
	for _, token := range strings.Fields(raw) {
		if v, ok := strings.CutPrefix(token, "Licenses="); ok {
			value, found = v, true
			break
		}
	}
	if !found {
		return nil, false
	}
	if value == "" || value == "(null)" {
		return nil, true
	}

	var bookings []LicenseBooking
	for _, entry := range strings.Split(value, ",") {
		name := entry
		quantity := 1
		if before, after, ok := strings.Cut(entry, ":"); ok {
			name = before
			if q, err := strconv.Atoi(after); err == nil {
				quantity = q
			}
		}
		booking := LicenseBooking{ProductFeature: name, Quantity: quantity}
		if at := strings.LastIndexByte(name, '@'); at >= 0 {
			booking.ProductFeature = name[:at]
			booking.ServerType = name[at+1:]
		}
		bookings = append(bookings, booking)
	}
	return bookings, true
}
