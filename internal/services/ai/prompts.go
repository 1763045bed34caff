package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/podut/wp-ai-studio/internal/models"
)

// clip returns at most n bytes of s, never splitting a multi-byte rune.
// Prompt context windows are bounded per operation to keep token usage
// predictable.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func keywordsPrompt(niche string, count int, details string, geo models.GeoSettings) string {
	geoPrompt := ""
	if geo.City != "" {
		geoPrompt = fmt.Sprintf("Local SEO focus for: %s, %s.", geo.City, geo.Country)
	}
	detailsPrompt := ""
	if details != "" {
		detailsPrompt = "Additional context: " + details
	}
	return fmt.Sprintf(`Generate a JSON list of exactly %d SEO keyword ideas for the niche: %q.
%s
%s
Return ONLY a JSON array of strings. Example: ["keyword 1", "keyword 2"]`, count, niche, detailsPrompt, geoPrompt)
}

func clusterTopicsPrompt(niche string, geo models.GeoSettings) string {
	geoPrompt := ""
	if geo.City != "" {
		geoPrompt = fmt.Sprintf("Local SEO context: %s, %s.", geo.City, geo.Country)
	}
	return fmt.Sprintf(`Act as an SEO Topical Authority Expert.
Create a Topic Cluster for: %q.
%s
Return a strict JSON array of strings where the first item is the Pillar Page Topic, and the next 9 are Sub-topics/Supporting Articles.
Total 10 items.`, niche, geoPrompt)
}

func strategyPrompt(keywords []string) string {
	encoded, _ := json.Marshal(keywords)
	return fmt.Sprintf(`Act as a Senior Content Strategist.
Input Keywords: %s

For each keyword, create an editorial plan item containing:
1. "title": A click-worthy, SEO-optimized title (H1).
2. "slug": A short, SEO-friendly URL slug.
3. "suggestedDate": A suggested publish date (YYYY-MM-DD), spaced out every 2 days starting from tomorrow.

Return a strict JSON ARRAY of objects.
Structure: [{ "keyword": "...", "title": "...", "slug": "...", "suggestedDate": "..." }]`, string(encoded))
}

func articlePrompt(keyword, articleContext string) string {
	contextPrompt := ""
	if articleContext != "" {
		contextPrompt = "Context/Constraints: " + articleContext
	}
	return fmt.Sprintf(`Write a comprehensive, SEO-optimized blog article for the keyword: %q.
%s

Requirements:
- Language: Romanian.
- Format: Semantic HTML (use h2, h3, p, ul, li).
- SEO: Include the keyword naturally in the first 100 words and headers.
- Title: Generate a compelling H1 title that includes the keyword.

Output JSON structure:
{
  "title": "Optimized H1 Title",
  "slug": "url-slug",
  "content": "<article>...html content...</article>",
  "excerpt": "Short summary (150 chars)",
  "seoTitle": "Meta Title (max 60 chars) including keyword",
  "seoDesc": "Meta Description (max 160 chars) including keyword",
  "focusKw": %q,
  "suggestedTags": ["tag1", "tag2"]
}`, keyword, contextPrompt, keyword)
}

func answerParagraphPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following content topic: "%s...".
Generate a "Direct Answer" paragraph (40-60 words) optimized for Answer Engines (Google SGE, Perplexity).
It should directly answer the implicit user intent of the topic.
Format it as a distinct HTML block using a div with inline styles:
border: 3px solid #3b82f6; background-color: #eff6ff; padding: 24px; border-radius: 12px; margin-bottom: 24px; box-shadow: 0 4px 6px -1px rgba(0, 0, 0, 0.1); font-family: sans-serif;
Start the block with <strong style="display:block; margin-bottom:12px; color:#1e40af; font-size:1.2em;">Quick Answer:</strong>
Return ONLY the HTML string of this block.`, clip(content, 500))
}

func tldrPrompt(content string) string {
	return fmt.Sprintf(`Read this content: "%s...".
Generate a TL;DR section.
1. One sentence summary (bold).
2. A bulleted list of 3-5 key takeaways.
Format as HTML using a <div style="background:#f0fdf4; padding:16px; border-radius:8px; margin-bottom:20px; border:1px solid #bbf7d0;">.
Title it "TL;DR - Rezumat" in H3.
Return JSON: { "html": "..." }`, clip(content, 3000))
}

func faqSchemaPrompt(content string) string {
	return fmt.Sprintf(`Analyze content: "%s...".
Generate 3-4 distinct Frequently Asked Questions based on the content.

Output JSON with two fields:
1. "html": A semantic HTML <section> with <h3>Frequently Asked Questions</h3> and <details><summary>Q</summary>A</details> tags.
2. "jsonLD": A valid JSON-LD object for "FAQPage" Schema.org.
IMPORTANT: Return ONLY the raw JSON object for the schema. DO NOT wrap it in <script> tags. DO NOT wrap it in markdown code blocks. The UI will wrap it.

Ensure questions are not already present in the content.`, clip(content, 5000))
}

func cleanHTMLPrompt(content, keyword string) string {
	h1Keyword := keyword
	if h1Keyword == "" {
		h1Keyword = "Topic"
	}
	return fmt.Sprintf(`Act as an SEO Code Expert. Clean and Optimize the following HTML content:
%q

Tasks:
1. **H1 Enforcement**: The content MUST start with an <h1> tag. If one exists, ensure it contains the keyword %q. If not, CREATE one at the very top. Remove any other H1 tags. There must be exactly one H1, and it must be the first element.
2. **Schema Cleaning**: Look for JSON-LD scripts. Ensure they are NOT nested inside other script tags. Flatten them to be valid.
3. **Deduplication**: Remove duplicate FAQ schemas or visible FAQ sections.
4. **SEO Preservation**: DO NOT remove paragraphs or headings that contain the keyword %q.
5. **Cleanup**: Remove empty tags (<p></p>), inline style attributes (except the Answer Snippet styles).

Return JSON: { "cleanedHtml": "..." }`, clip(content, 50000), h1Keyword, keyword)
}

func auditPrompt(content, keyword, seoTitle, seoDesc string) string {
	return fmt.Sprintf(`Perform a strict AEO & SEO Audit on this content.
Target Keyword: %q
SEO Title: %q
Meta Desc: %q
Content: %q

Tasks:
1. Check for **Answer Snippet** (definition/answer block at start).
2. Check for **TL;DR** section.
3. Check for **FAQ** section and valid Schema.
4. Verify **H1 Structure**: Does it start with H1? Does H1 have the keyword?
5. **Internal Links**: Count the number of internal hyperlinks (<a href="...">) in the content.
6. **Metadata**:
   - Is SEO Title present and does it include the keyword?
   - Is Meta Desc 120-160 chars and includes keyword?

Return JSON:
{
  "score": number (0-100),
  "internalLinksCount": number,
  "metaAnalysis": "Short string evaluating Title/Meta quality (e.g., 'Title missing keyword, Desc too short')",
  "checklist": {
    "hasAnswerParagraph": boolean,
    "hasTLDR": boolean,
    "hasFAQ": boolean,
    "structureScore": number,
    "keywordDensity": "string assessment (e.g. 'Natural', 'Stuffed')"
  },
  "suggestions": ["string1", "string2"]
}`, keyword, seoTitle, seoDesc, clip(content, 50000))
}

func seoMetadataPrompt(content, keyword string) string {
	return fmt.Sprintf(`Generate SEO Metadata for content related to keyword: %q.
Content Sample: "%s..."

Requirements:
1. **SEO Title**: 50-60 characters. Must include %q at the beginning. Engaging, high CTR.
2. **Meta Description**: 120-160 characters. Must include %q. Summarize value proposition. Actionable.

Return JSON: { "seoTitle": "...", "seoDesc": "..." }`, keyword, clip(content, 2000), keyword, keyword)
}

func imagePrompt(title, content string, opts models.ImageOptions) string {
	style := opts.Style
	if style == "" {
		style = "realistic, cinematic lighting"
	}
	aspectRatio := opts.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	var extras strings.Builder
	if opts.TextOverlay != "" {
		fmt.Fprintf(&extras, "Text Requirement: The image MUST clearly display the text: %q in a modern font.\n", opts.TextOverlay)
	}
	if opts.BrandingColors != "" {
		fmt.Fprintf(&extras, "Color Palette: Dominant colors should be %s.\n", opts.BrandingColors)
	}
	return fmt.Sprintf(`Generate a high-quality, photorealistic featured image for a blog article titled %q.
Topic Context: %s.
Style: %s.
%sAspect Ratio: %s.
No blurry text, no distorted faces. High resolution, blog-ready.`, title, clip(content, 200), style, extras.String(), aspectRatio)
}

func imageFallbackPrompt(title string, opts models.ImageOptions) string {
	return fmt.Sprintf(`Act as a Prompt Engineer. Write a detailed image generation prompt for: %q.
Style: %s.
Return ONLY the prompt string.`, title, opts.Style)
}

func internalLinksPrompt(content string, posts []models.Post) string {
	var postsContext strings.Builder
	for _, post := range posts {
		fmt.Fprintf(&postsContext, "- Title: %q, Link: %q\n", post.Title.Rendered, post.Link)
	}
	return fmt.Sprintf(`Act as an SEO Specialist. You are tasked with Internal Link Building.

Current Content:
%q

Existing Blog Posts (Targets for internal linking):
%s

Instructions:
1. **Semantic Matching**: Scan the "Current Content" for concepts, synonyms, or phrases that match the topics of the "Existing Blog Posts". Do NOT rely solely on exact title matches.
2. **Natural Integration**: Create links that flow naturally within the sentence structure. Use existing words as anchor text whenever possible.
3. **Rules**:
   - Do NOT change the meaning of the text.
   - Do NOT force links where they don't belong.
   - Max 1 link per target URL.
   - Limit total new links to 3-5 most relevant ones.
4. Return JSON: { "linkedContent": "..." } containing the full HTML with new links embedded.`, clip(content, 50000), postsContext.String())
}
