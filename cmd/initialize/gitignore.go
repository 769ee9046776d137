package initialize

import (
	"os"
	"path/filepath"
	"strings"
)

// gitignoreBlock keeps the generated dashboard and the local blame cache out
// of version control. The marker comment makes the update idempotent.
const gitignoreBlock = `# codereport (generated dashboard and local blame cache)
.codereports/html/
.codereports/.blame-cache
`

// ensureRootGitignore appends the codereport block to the repo root
// .gitignore unless it is already there.
func ensureRootGitignore(repoRoot string) error {
	gitignorePath := filepath.Join(repoRoot, ".gitignore")

	content := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return err
	}

	if strings.Contains(content, ".codereports/html/") || strings.Contains(content, "# codereport") {
		return nil
	}

	newContent := gitignoreBlock
	if strings.TrimSpace(content) != "" {
		newContent = strings.TrimRight(content, "\n") + "\n" + gitignoreBlock
	}
	return os.WriteFile(gitignorePath, []byte(newContent), 0644)
}
