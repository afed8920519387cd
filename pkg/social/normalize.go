package social

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bentolink/bentolink-backend/pkg/enums"
)

// ErrUnrecognized signals input that is neither a usable URL nor a known
// platform shorthand.
var ErrUnrecognized = errors.New("unrecognized social link")

// NormalizedLink is the canonical form of a social input string.
type NormalizedLink struct {
	URL      string
	Platform *enums.SocialPlatform
	Handle   string
}

var platformHosts = map[string]enums.SocialPlatform{
	"twitter.com":   enums.SocialPlatformTwitter,
	"x.com":         enums.SocialPlatformTwitter,
	"instagram.com": enums.SocialPlatformInstagram,
	"tiktok.com":    enums.SocialPlatformTikTok,
	"github.com":    enums.SocialPlatformGitHub,
	"linkedin.com":  enums.SocialPlatformLinkedIn,
	"youtube.com":   enums.SocialPlatformYouTube,
	"youtu.be":      enums.SocialPlatformYouTube,
	"facebook.com":  enums.SocialPlatformFacebook,
	"threads.net":   enums.SocialPlatformThreads,
	"bsky.app":      enums.SocialPlatformBluesky,
}

var shorthandPlatforms = map[string]enums.SocialPlatform{
	"ig":        enums.SocialPlatformInstagram,
	"instagram": enums.SocialPlatformInstagram,
	"tw":        enums.SocialPlatformTwitter,
	"x":         enums.SocialPlatformTwitter,
	"twitter":   enums.SocialPlatformTwitter,
	"tt":        enums.SocialPlatformTikTok,
	"tiktok":    enums.SocialPlatformTikTok,
	"gh":        enums.SocialPlatformGitHub,
	"github":    enums.SocialPlatformGitHub,
	"li":        enums.SocialPlatformLinkedIn,
	"linkedin":  enums.SocialPlatformLinkedIn,
	"yt":        enums.SocialPlatformYouTube,
	"youtube":   enums.SocialPlatformYouTube,
	"fb":        enums.SocialPlatformFacebook,
	"facebook":  enums.SocialPlatformFacebook,
	"threads":   enums.SocialPlatformThreads,
	"bsky":      enums.SocialPlatformBluesky,
	"bluesky":   enums.SocialPlatformBluesky,
}

// Normalize turns free-form onboarding input into a canonical https URL.
// Accepted forms: full URLs, bare domains, and "<platform> @handle"
// shorthand such as "ig @jordan".
func Normalize(raw string) (*NormalizedLink, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, ErrUnrecognized
	}

	if link, ok := normalizeShorthand(input); ok {
		return link, nil
	}

	candidate := input
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" || !strings.Contains(parsed.Hostname(), ".") {
		return nil, ErrUnrecognized
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrUnrecognized
	}
	parsed.Scheme = "https"

	link := &NormalizedLink{URL: parsed.String()}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if platform, ok := platformHosts[host]; ok {
		link.Platform = &platform
		link.Handle = handleFromPath(platform, parsed.Path)
	}
	return link, nil
}

// BuildURL returns the profile URL for a platform handle.
func BuildURL(platform enums.SocialPlatform, handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	switch platform {
	case enums.SocialPlatformTwitter:
		return "https://x.com/" + handle
	case enums.SocialPlatformInstagram:
		return "https://instagram.com/" + handle
	case enums.SocialPlatformTikTok:
		return "https://tiktok.com/@" + handle
	case enums.SocialPlatformGitHub:
		return "https://github.com/" + handle
	case enums.SocialPlatformLinkedIn:
		return "https://linkedin.com/in/" + handle
	case enums.SocialPlatformYouTube:
		return "https://youtube.com/@" + handle
	case enums.SocialPlatformFacebook:
		return "https://facebook.com/" + handle
	case enums.SocialPlatformThreads:
		return "https://threads.net/@" + handle
	case enums.SocialPlatformBluesky:
		return "https://bsky.app/profile/" + handle
	}
	return ""
}

func normalizeShorthand(input string) (*NormalizedLink, bool) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return nil, false
	}
	platform, ok := shorthandPlatforms[strings.ToLower(fields[0])]
	if !ok {
		return nil, false
	}
	handle := strings.TrimPrefix(fields[1], "@")
	if handle == "" || strings.ContainsAny(handle, "/?#") {
		return nil, false
	}
	return &NormalizedLink{
		URL:      BuildURL(platform, handle),
		Platform: &platform,
		Handle:   handle,
	}, true
}

func handleFromPath(platform enums.SocialPlatform, path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	first := segments[0]
	switch platform {
	case enums.SocialPlatformLinkedIn:
		if first == "in" && len(segments) > 1 {
			return segments[1]
		}
		return ""
	case enums.SocialPlatformBluesky:
		if first == "profile" && len(segments) > 1 {
			return segments[1]
		}
		return ""
	default:
		return strings.TrimPrefix(first, "@")
	}
}

// DisplayTitle formats a normalized link into a human card title, preferring
// the platform name over the raw URL.
func DisplayTitle(link *NormalizedLink) string {
	if link == nil {
		return ""
	}
	if link.Platform != nil {
		title := platformTitle(*link.Platform)
		if link.Handle != "" {
			return fmt.Sprintf("%s @%s", title, link.Handle)
		}
		return title
	}
	parsed, err := url.Parse(link.URL)
	if err != nil || parsed.Hostname() == "" {
		return link.URL
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func platformTitle(platform enums.SocialPlatform) string {
	switch platform {
	case enums.SocialPlatformTikTok:
		return "TikTok"
	case enums.SocialPlatformGitHub:
		return "GitHub"
	case enums.SocialPlatformLinkedIn:
		return "LinkedIn"
	case enums.SocialPlatformYouTube:
		return "YouTube"
	default:
		name := platform.String()
		if name == "" {
			return ""
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
}
