package tui

// UI Text Constants
const (
	TextTitle = "🎬 AI Creative Studio"

	TextVideoPlaceholder = "Write your story here. Every sentence becomes a scene."
	TextImagePlaceholder = "Describe the image..."

	TextFooterVideo   = "ctrl+s generate | ctrl+n voice | ctrl+o play | ctrl+d download | ctrl+p publish | tab switch | ctrl+c quit"
	TextFooterImage   = "enter generate | ctrl+o open | ctrl+d download | ctrl+p publish | tab switch | ctrl+c quit"
	TextFooterGallery = "←/→ photos/videos | ctrl+g refresh | tab switch | ctrl+c quit"
	TextFooterPublish = "tab next field | enter publish | esc close"
	TextFooterBusy    = "Working... | ctrl+c quit"

	TextGenerateVideo = "Generate Video 🎥"
	TextGenerateImage = "Generate Image 🎨"
	TextGalleryEmpty  = "Nothing published yet."
	TextNothingSaved  = "Nothing generated yet!"
	TextImageReady    = "Image ready ✨"
)
