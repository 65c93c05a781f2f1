package formsearch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Bahjat/formsearch/internal/model"
)

func TestExtract(t *testing.T) {
	base := mustParseURL("https://a.com/en/search?base_query=internships")

	tests := []struct {
		name  string
		html  string
		limit int
		want  []model.ResultEntry
	}{
		{
			name: "first two in document order",
			html: `<a href="/jobs/1">Data Intern</a>
				<a href="/jobs/2">Design Intern</a>
				<a href="/jobs/3">Finance Intern</a>`,
			limit: 2,
			want: []model.ResultEntry{
				{Label: "Data Intern", URL: "https://a.com/jobs/1"},
				{Label: "Design Intern", URL: "https://a.com/jobs/2"},
			},
		},
		{
			name: "anchors without text or href are skipped",
			html: `<a href="/logo"><img src="logo.png"></a>
				<a>Placeholder</a>
				<a href="">Empty</a>
				<a href="/blank">   </a>
				<a href="/jobs/9">  Platform Intern  </a>`,
			limit: 2,
			want: []model.ResultEntry{
				{Label: "Platform Intern", URL: "https://a.com/jobs/9"},
			},
		},
		{
			name: "hrefs resolve against the search URL",
			html: `<a href="?page=2">Next</a>
				<a href="detail/7">Backend Intern</a>
				<a href="https://jobs.example.org/x">External</a>`,
			limit: 3,
			want: []model.ResultEntry{
				{Label: "Next", URL: "https://a.com/en/search?page=2"},
				{Label: "Backend Intern", URL: "https://a.com/en/detail/7"},
				{Label: "External", URL: "https://jobs.example.org/x"},
			},
		},
		{
			name:  "no qualifying anchors",
			html:  `<p>Sorry, nothing matched.</p>`,
			limit: 2,
			want:  nil,
		},
		{
			name:  "non-positive limit",
			html:  `<a href="/jobs/1">Data Intern</a>`,
			limit: 0,
			want:  nil,
		},
		{
			name:  "fewer anchors than the limit",
			html:  `<a href="/jobs/1">Data Intern</a>`,
			limit: 5,
			want:  []model.ResultEntry{{Label: "Data Intern", URL: "https://a.com/jobs/1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(mustParseDocument(t, tt.html), base, tt.limit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
			if len(got) > max(tt.limit, 0) {
				t.Errorf("len = %d exceeds limit %d", len(got), tt.limit)
			}
		})
	}
}
