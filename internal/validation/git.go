package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	gitRefPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)

	gitRemoteURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https://[a-zA-Z0-9.-]+/[a-zA-Z0-9_./-]+(?:\.git)?$`),
		regexp.MustCompile(`^git@[a-zA-Z0-9.-]+:[a-zA-Z0-9_./-]+(?:\.git)?$`),
		regexp.MustCompile(`^ssh://[a-zA-Z0-9@.-]+/[a-zA-Z0-9_./-]+(?:\.git)?$`),
		regexp.MustCompile(`^file:///[a-zA-Z0-9_./-]+$`),
		regexp.MustCompile(`^/[a-zA-Z0-9_./-]+$`),
	}

	// null byte is reported separately
	dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}
)

func checkDangerous(kind, value string) error {
	if strings.ContainsRune(value, '\x00') {
		return fmt.Errorf("%s contains null byte", kind)
	}
	for _, char := range dangerousChars {
		if strings.Contains(value, char) {
			return fmt.Errorf("%s contains invalid character: %q", kind, char)
		}
	}
	return nil
}

// ValidateGitRef validates a branch or tag name passed to "git clone --branch".
func ValidateGitRef(ref string) error {
	if ref == "" {
		return ErrEmptyInput
	}
	if len(ref) > 255 {
		return fmt.Errorf("ref too long (max 255 characters)")
	}
	if err := checkDangerous("ref", ref); err != nil {
		return err
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("ref cannot start with '-'")
	}
	if !gitRefPattern.MatchString(ref) {
		return fmt.Errorf("invalid ref format: must contain only alphanumeric characters, hyphens, underscores, slashes, and dots")
	}
	if strings.Contains(ref, "..") {
		return fmt.Errorf("ref cannot contain '..'")
	}
	return nil
}

// ValidateGitRemoteURL validates a repository URL passed to "git clone".
func ValidateGitRemoteURL(url string) error {
	if url == "" {
		return ErrEmptyInput
	}
	if len(url) > 2048 {
		return fmt.Errorf("remote URL too long (max 2048 characters)")
	}
	if err := checkDangerous("remote URL", url); err != nil {
		return err
	}
	for _, pattern := range gitRemoteURLPatterns {
		if pattern.MatchString(url) {
			return nil
		}
	}
	return fmt.Errorf("invalid git remote URL format: must be HTTPS, SSH URL, or local path")
}
