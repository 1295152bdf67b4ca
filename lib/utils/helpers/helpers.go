package helpers

import (
	"context"
	"regexp"
	"strings"

	"github.com/thoas/go-funk"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

var cnicSeparators = regexp.MustCompile(`[\s-]+`)
var cnicFormat = regexp.MustCompile(`^\d{13}$`)
var passportFormat = regexp.MustCompile(`^[A-Z]{2}\d{7}$`)

// NormalizeCNIC 35202-1234567-1 -> 3520212345671
func NormalizeCNIC(value string) string {
	return cnicSeparators.ReplaceAllString(strings.TrimSpace(value), "")
}

func IsValidCNIC(value string) bool {
	return cnicFormat.MatchString(value)
}

func NormalizePassport(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

func IsValidPassport(value string) bool {
	return passportFormat.MatchString(value)
}

// UniqueIDs без пустых значений и повторов, порядок первого появления сохраняется
func UniqueIDs(ids []string) []string {
	trimmed := funk.Map(ids, strings.TrimSpace).([]string)
	nonEmpty := funk.FilterString(trimmed, func(id string) bool {
		return id != ""
	})
	return funk.UniqString(nonEmpty)
}

func FullName(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
