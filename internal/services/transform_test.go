package services

import (
	"testing"

	"github.com/kerjaplus/jobboard/internal/clients/cms"
	"github.com/stretchr/testify/assert"
)

const testSiteURL = "https://kerjaplus.id"

func money(value float64) cms.Money {
	return cms.Money{Value: value, Valid: true}
}

func Test_FormatSalary(t *testing.T) {

	tests := []struct {
		name     string
		min      cms.Money
		max      cms.Money
		currency string
		period   string
		expected string
	}{
		{"no bounds", cms.Money{}, cms.Money{}, "IDR", "", "Negosiasi"},
		{"millions range", money(1_000_000), money(3_000_000), "IDR", "", "Rp 1-3 Juta"},
		{"millions range with period", money(1_000_000), money(3_000_000), "IDR", "monthly", "Rp 1-3 Juta/bulan"},
		{"fractional millions", money(1_500_000), money(3_000_000), "IDR", "", "Rp 1.5-3 Juta"},
		{"below a million", money(500_000), money(900_000), "IDR", "", "Rp 500.000 - 900.000"},
		{"below a million with period", money(500_000), money(900_000), "IDR", "daily", "Rp 500.000 - 900.000/hari"},
		{"min only", money(2_000_000), cms.Money{}, "IDR", "", "Rp 2 Juta+"},
		{"max only", cms.Money{}, money(750_000), "IDR", "", "Hingga Rp 750.000"},
		{"usd symbol", money(1_000_000), money(2_000_000), "USD", "", "$1-2 Juta"},
		{"unknown currency", money(1_000_000), money(2_000_000), "SGD", "", "1-2 Juta"},
		{"unknown period passes through", money(1_000_000), money(2_000_000), "IDR", "quarterly", "Rp 1-2 Juta/quarterly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSalary(tt.min, tt.max, tt.currency, tt.period))
		})
	}
}

func Test_WorkPolicy_RemoteBeatsHybrid(t *testing.T) {

	assert.Equal(t, "Remote", workPolicyOf(&cms.JobPost{IsRemote: true, IsHybrid: true}))
	assert.Equal(t, "Hybrid", workPolicyOf(&cms.JobPost{IsHybrid: true}))
	assert.Equal(t, "On-site", workPolicyOf(&cms.JobPost{}))
}

func Test_ApplyLink_FallbackChain(t *testing.T) {

	withURL := &cms.JobPost{ID: "jp-1", ApplyURL: "https://apply.example.com", ApplyEmail: "hr@example.com"}
	assert.Equal(t, "https://apply.example.com", applyLinkOf(withURL, testSiteURL))

	withEmail := &cms.JobPost{ID: "jp-1", ApplyEmail: "hr@example.com"}
	assert.Equal(t, "mailto:hr@example.com", applyLinkOf(withEmail, testSiteURL))

	withCategory := &cms.JobPost{
		ID:         "jp-1",
		Categories: []cms.Named{{ID: "cat-7", Name: "IT", Slug: "teknologi-informasi"}},
	}
	assert.Equal(t, "https://kerjaplus.id/loker/teknologi-informasi/jp-1", applyLinkOf(withCategory, testSiteURL))

	bare := &cms.JobPost{ID: "jp-1"}
	assert.Equal(t, "https://kerjaplus.id/loker/uncategorized/jp-1", applyLinkOf(bare, testSiteURL))
}

func Test_JobFromPost_FlattensFirstCategoryAndTag(t *testing.T) {

	post := &cms.JobPost{
		ID:    "jp-1",
		Slug:  "backend-engineer",
		Title: "Backend Engineer",
		Categories: []cms.Named{
			{ID: "cat-7", Name: "Teknologi Informasi", Slug: "teknologi-informasi"},
			{ID: "cat-9", Name: "Startup", Slug: "startup"},
		},
		Tags:     []cms.Named{{ID: "t-1", Name: "Golang"}, {ID: "t-2", Name: "SQL"}},
		Company:  cms.Named{Name: "PT Maju Teknologi"},
		Province: cms.Named{Name: "DKI Jakarta"},
		Regency:  cms.Named{Name: "Jakarta Selatan"},
		IsRemote: true,
	}

	job := jobFromPost(post, testSiteURL)

	assert.Equal(t, "Teknologi Informasi", job.Category)
	assert.Equal(t, []string{"Teknologi Informasi", "Startup"}, job.Categories)
	assert.Equal(t, "Golang", job.Tag)
	assert.Equal(t, "PT Maju Teknologi", job.CompanyName)
	assert.Equal(t, "DKI Jakarta", job.Province)
	assert.Equal(t, "Jakarta Selatan", job.City)
	assert.Equal(t, "Remote", job.WorkPolicy)
}

func Test_JobFromPost_EmptyCategoriesAndTags(t *testing.T) {

	job := jobFromPost(&cms.JobPost{ID: "jp-2"}, testSiteURL)

	assert.Equal(t, "", job.Category)
	assert.Equal(t, "", job.Tag)
	assert.Equal(t, "Negosiasi", job.Salary)
}

func Test_JobFromPost_IsPure(t *testing.T) {

	post := &cms.JobPost{
		ID:             "jp-1",
		SalaryMin:      money(1_000_000),
		SalaryMax:      money(3_000_000),
		SalaryCurrency: "IDR",
	}

	first := jobFromPost(post, testSiteURL)
	second := jobFromPost(post, testSiteURL)

	assert.Equal(t, first, second)
	assert.Equal(t, "Rp 1-3 Juta", first.Salary)
}
