package enums

// SocialPlatform identifies a recognized social network for link normalization.
type SocialPlatform string

const (
	SocialPlatformTwitter   SocialPlatform = "twitter"
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformTikTok    SocialPlatform = "tiktok"
	SocialPlatformGitHub    SocialPlatform = "github"
	SocialPlatformLinkedIn  SocialPlatform = "linkedin"
	SocialPlatformYouTube   SocialPlatform = "youtube"
	SocialPlatformFacebook  SocialPlatform = "facebook"
	SocialPlatformThreads   SocialPlatform = "threads"
	SocialPlatformBluesky   SocialPlatform = "bluesky"
)

// String implements fmt.Stringer.
func (p SocialPlatform) String() string {
	return string(p)
}
