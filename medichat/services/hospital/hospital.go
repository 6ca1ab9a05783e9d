// Package hospital answers structured questions (beds, death rates, staff
// schedules, treatment outcomes) by pattern-matching the raw hospital data
// file, without going through the model.
package hospital

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"medichat/medichat/utils/logging"

	"go.uber.org/zap"
)

type GPT struct {
	data string
}

// New loads the hospital data file. A missing file degrades to empty data,
// every query then reports "no data found".
func New(dataPath string) *GPT {
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		logging.ErrorLogger.Error("hospital data file not found", zap.String("path", dataPath), zap.Error(err))
		return &GPT{}
	}
	return &GPT{data: string(raw)}
}

type BedAvailability struct {
	Ward          string  `json:"ward"`
	TotalBeds     int     `json:"total_beds"`
	OccupiedBeds  int     `json:"occupied_beds"`
	AvailableBeds int     `json:"available_beds"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

func (g *GPT) BedAvailability(ward string) (*BedAvailability, error) {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(ward) + ` Ward: (\d+)/(\d+) beds occupied`)
	if err != nil {
		return nil, err
	}
	m := re.FindStringSubmatch(g.data)
	if m == nil {
		return nil, fmt.Errorf("no data found for %s Ward", ward)
	}
	occupied, _ := strconv.Atoi(m[1])
	total, _ := strconv.Atoi(m[2])
	return &BedAvailability{
		Ward:          ward,
		TotalBeds:     total,
		OccupiedBeds:  occupied,
		AvailableBeds: total - occupied,
		OccupancyRate: float64(occupied) / float64(total) * 100,
	}, nil
}

type DeathRate struct {
	Date        string `json:"date"`
	TotalDeaths int    `json:"total_deaths"`
}

func (g *GPT) DeathRate(date string) (*DeathRate, error) {
	re, err := regexp.Compile(regexp.QuoteMeta(date) + `: (\d+) deaths`)
	if err != nil {
		return nil, err
	}
	m := re.FindStringSubmatch(g.data)
	if m == nil {
		return nil, fmt.Errorf("no death rate data found for %s", date)
	}
	deaths, _ := strconv.Atoi(m[1])
	return &DeathRate{Date: date, TotalDeaths: deaths}, nil
}

type StaffSchedule struct {
	Department string   `json:"department"`
	Shift      string   `json:"shift"`
	Staff      []string `json:"staff"`
}

func (g *GPT) StaffSchedule(department, shift string) (*StaffSchedule, error) {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(department) + ` Department:\n` +
		`- ` + regexp.QuoteMeta(shift) + ` Shift \(.*?\):\n` +
		`((?:\s*\*\s*.*\n?)*)`)
	if err != nil {
		return nil, err
	}
	m := re.FindStringSubmatch(g.data)
	if m == nil {
		return nil, fmt.Errorf("no staff schedule found for %s Department, %s Shift", department, shift)
	}
	var staff []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "* ", ""))
		if line != "" {
			staff = append(staff, line)
		}
	}
	return &StaffSchedule{Department: department, Shift: shift, Staff: staff}, nil
}

type TreatmentOutcome struct {
	Treatment string            `json:"treatment"`
	Year      string            `json:"year"`
	Details   map[string]string `json:"details"`
}

func (g *GPT) TreatmentOutcome(treatment, year string) (*TreatmentOutcome, error) {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(treatment) + ` Study \(` + regexp.QuoteMeta(year) + `\):\n` +
		`((?:- .*\n?)*)`)
	if err != nil {
		return nil, err
	}
	m := re.FindStringSubmatch(g.data)
	if m == nil {
		return nil, fmt.Errorf("no treatment outcome data found for %s in %s", treatment, year)
	}
	details := map[string]string{}
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- "))
		if line == "" {
			continue
		}
		if k, v, ok := strings.Cut(line, ": "); ok {
			details[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return &TreatmentOutcome{Treatment: treatment, Year: year, Details: details}, nil
}

var (
	wardRe       = regexp.MustCompile(`(?i)(\w+) ward`)
	dateRe       = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	departmentRe = regexp.MustCompile(`(?i)(\w+) department`)
	shiftRe      = regexp.MustCompile(`(?i)(\w+) shift`)
	treatmentRe  = regexp.MustCompile(`(?i)(\w+) study`)
	yearRe       = regexp.MustCompile(`\d{4}`)
)

// ProcessQuery dispatches a natural-language question to the matching
// extractor by keyword.
func (g *GPT) ProcessQuery(query string) (interface{}, error) {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "bed") && strings.Contains(q, "ward"):
		if m := wardRe.FindStringSubmatch(query); m != nil {
			return g.BedAvailability(m[1])
		}
	case strings.Contains(q, "death") && strings.Contains(q, "rate"):
		if m := dateRe.FindString(query); m != "" {
			return g.DeathRate(m)
		}
	case strings.Contains(q, "staff") || strings.Contains(q, "schedule"):
		dep := departmentRe.FindStringSubmatch(query)
		shift := shiftRe.FindStringSubmatch(query)
		if dep != nil && shift != nil {
			return g.StaffSchedule(dep[1], shift[1])
		}
	case strings.Contains(q, "treatment") || strings.Contains(q, "study"):
		treatment := treatmentRe.FindStringSubmatch(query)
		year := yearRe.FindString(query)
		if treatment != nil && year != "" {
			return g.TreatmentOutcome(treatment[1], year)
		}
	}
	return nil, fmt.Errorf("unable to process query, please rephrase or be more specific")
}
