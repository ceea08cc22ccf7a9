package github

import "testing"

func TestParseOwnerRepo(t *testing.T) {
	tests := []struct {
		name      string
		repo      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "valid owner/repo",
			repo:      "gh-nvat/gitops-releasegate",
			wantOwner: "gh-nvat",
			wantRepo:  "gitops-releasegate",
		},
		{
			name:    "missing slash",
			repo:    "gitops-releasegate",
			wantErr: true,
		},
		{
			name:    "empty owner",
			repo:    "/repo",
			wantErr: true,
		},
		{
			name:    "empty repo",
			repo:    "owner/",
			wantErr: true,
		},
		{
			name:    "too many segments",
			repo:    "a/b/c",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseOwnerRepo(tt.repo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOwnerRepo(%q) error = %v, wantErr %v", tt.repo, err, tt.wantErr)
			}
			if !tt.wantErr && (owner != tt.wantOwner || repo != tt.wantRepo) {
				t.Errorf("ParseOwnerRepo(%q) = (%q, %q), want (%q, %q)", tt.repo, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
