package services

import (
	"fmt"
	"strings"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/kerjaplus/jobboard/internal/domain/models"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const negotiableSalary = "Negosiasi"

// jutaThreshold is the bound above which salaries render in the short
// "Rp 1-3 Juta" form instead of fully grouped digits.
const jutaThreshold = 1_000_000

var currencySymbols = map[string]string{
	"IDR": "Rp ",
	"USD": "$",
}

var salaryPeriods = map[string]string{
	"monthly": "bulan",
	"yearly":  "tahun",
	"weekly":  "minggu",
	"daily":   "hari",
	"hourly":  "jam",
}

var idPrinter = message.NewPrinter(language.Indonesian)

// jobFromPost is the canonical transformer from the CMS job-post shape to the
// internal Job. It is pure: the same post always yields the same Job.
func jobFromPost(post *cms.JobPost, siteURL string) models.Job {

	return models.Job{
		ID:             post.ID,
		Slug:           post.Slug,
		Title:          post.Title,
		Content:        post.Content,
		CompanyName:    post.Company.Name,
		Category:       firstName(post.Categories),
		Categories:     lo.Map(post.Categories, func(c cms.Named, _ int) string { return c.Name }),
		Province:       post.Province.Name,
		City:           post.Regency.Name,
		EmploymentType: post.Type.Name,
		Education:      post.EducationLevel.Name,
		Experience:     post.ExperienceLevel.Name,
		Tag:            firstName(post.Tags),
		Salary:         formatSalary(post.SalaryMin, post.SalaryMax, post.SalaryCurrency, post.SalaryPeriod),
		WorkPolicy:     workPolicyOf(post),
		ApplyLink:      applyLinkOf(post, siteURL),
		SEOTitle:       post.SEOTitle,
		SEODescription: post.SEODescription,
		PublishedAt:    post.PublishedAt,
	}
}

func firstName(values []cms.Named) string {
	if len(values) == 0 {
		return ""
	}
	return values[0].Name
}

// Remote takes priority over hybrid.
func workPolicyOf(post *cms.JobPost) string {
	switch {
	case post.IsRemote:
		return "Remote"
	case post.IsHybrid:
		return "Hybrid"
	default:
		return "On-site"
	}
}

// applyLinkOf resolves where the apply button points: explicit URL, then a
// mailto of the application email, then the canonical job page on our site.
func applyLinkOf(post *cms.JobPost, siteURL string) string {

	if post.ApplyURL != "" {
		return post.ApplyURL
	}

	if post.ApplyEmail != "" {
		return "mailto:" + post.ApplyEmail
	}

	categorySlug := "uncategorized"
	if len(post.Categories) > 0 && post.Categories[0].Slug != "" {
		categorySlug = post.Categories[0].Slug
	}

	return strings.TrimSuffix(siteURL, "/") + "/loker/" + categorySlug + "/" + post.ID
}

func formatSalary(min, max cms.Money, currency, period string) string {

	if !min.Valid && !max.Valid {
		return negotiableSalary
	}

	symbol := currencySymbols[currency]
	suffix := ""
	if period != "" {
		suffix = "/" + translatePeriod(period)
	}

	switch {
	case min.Valid && max.Valid && min.Value >= jutaThreshold && max.Value >= jutaThreshold:
		return symbol + formatJuta(min.Value) + "-" + formatJuta(max.Value) + " Juta" + suffix
	case min.Valid && max.Valid:
		return symbol + formatGrouped(min.Value) + " - " + formatGrouped(max.Value) + suffix
	case min.Valid:
		return symbol + formatAmount(min.Value) + "+" + suffix
	default:
		return "Hingga " + symbol + formatAmount(max.Value) + suffix
	}
}

func translatePeriod(period string) string {
	if translated, ok := salaryPeriods[period]; ok {
		return translated
	}
	return period
}

func formatAmount(value float64) string {
	if value >= jutaThreshold {
		return formatJuta(value) + " Juta"
	}
	return formatGrouped(value)
}

// formatJuta renders the value in millions, one decimal place when the
// division is not exact.
func formatJuta(value float64) string {
	millions := value / jutaThreshold
	if millions == float64(int64(millions)) {
		return fmt.Sprintf("%d", int64(millions))
	}
	return fmt.Sprintf("%.1f", millions)
}

// formatGrouped renders the value with id-ID thousands separators.
func formatGrouped(value float64) string {
	return idPrinter.Sprintf("%d", int64(value))
}
