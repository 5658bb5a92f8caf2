package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/MideastHub/internal/source"
	"github.com/mmcdole/gofeed"
)

// Article 是规范化后的统一新闻结构；Source 指向注册表里的同一个对象
type Article struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Link        string         `json:"link"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content,omitempty"`
	PubDate     time.Time      `json:"pubDate"`
	Source      *source.Source `json:"source"`
	Author      string         `json:"author,omitempty"`
	Categories  []string       `json:"categories"`
	ImageURL    string         `json:"imageUrl,omitempty"`
}

var (
	imgTagRe   = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)(\?.*)?$`)
	htmlTagRe  = regexp.MustCompile(`<[^>]*>`)
)

// Normalize 把一条原始 feed item 转成 Article，缺什么补什么，绝不失败。
// fetchedAt 用于兜底发布时间：feed 没给可解析日期时以抓取时间为准
func Normalize(item *gofeed.Item, src *source.Source, fetchedAt time.Time) *Article {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	cats := item.Categories
	if cats == nil {
		cats = []string{}
	}

	return &Article{
		// ID 用原始字段计算，同一条 item 反复抓取得到同一个 ID
		ID:          hashArticle(item.Title, item.Link, src.ID),
		Title:       title,
		Link:        item.Link,
		Description: extractDescription(item),
		Content:     extractContent(item),
		PubDate:     extractPubDate(item, fetchedAt),
		Source:      src,
		Author:      extractAuthor(item),
		Categories:  cats,
		ImageURL:    ExtractImageURL(item),
	}
}

func hashArticle(title, link, sourceID string) string {
	h := sha1.New()
	h.Write([]byte(title + "-" + link + "-" + sourceID))
	return hex.EncodeToString(h.Sum(nil))
}

// extractDescription 优先用剥掉标签的纯文本摘要，剥完为空再退回原始 description
func extractDescription(item *gofeed.Item) string {
	if snippet := stripHTML(item.Description); snippet != "" {
		return snippet
	}
	return item.Description
}

// extractContent 优先 content:encoded 的富文本正文，退回普通 description
func extractContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

func extractPubDate(item *gofeed.Item, fetchedAt time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return fetchedAt
}

// extractAuthor 优先 dc:creator，其次普通 author 字段
func extractAuthor(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

// ExtractImageURL 按优先级从各种不规范的 feed 形态里找出一张图，找不到返回空串：
//  1. media:content 列表里 MIME 类型为 image/* 的条目
//  2. media:thumbnail（裸字符串或带 url 属性的对象）
//  3. enclosure（显式 image/* 类型，或无类型但 URL 以图片扩展名结尾）
//  4. 正文里第一个 <img src="...">
//  5. 摘要 / description 里第一个 <img src="...">
func ExtractImageURL(item *gofeed.Item) string {
	if u := imageFromMediaContent(item); u != "" {
		return u
	}
	if u := imageFromMediaThumbnail(item); u != "" {
		return u
	}
	if u := imageFromEnclosure(item); u != "" {
		return u
	}
	if m := imgTagRe.FindStringSubmatch(item.Content); m != nil {
		return m[1]
	}
	if m := imgTagRe.FindStringSubmatch(item.Description); m != nil {
		return m[1]
	}
	return ""
}

func imageFromMediaContent(item *gofeed.Item) string {
	for _, e := range item.Extensions["media"]["content"] {
		if strings.HasPrefix(e.Attrs["type"], "image/") && e.Attrs["url"] != "" {
			return e.Attrs["url"]
		}
	}
	return ""
}

func imageFromMediaThumbnail(item *gofeed.Item) string {
	for _, e := range item.Extensions["media"]["thumbnail"] {
		// 个别源直接把 URL 当文本塞在节点里，这种裸字符串形态优先
		if e.Value != "" {
			return e.Value
		}
		if u := e.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

func imageFromEnclosure(item *gofeed.Item) string {
	for _, en := range item.Enclosures {
		if en == nil || en.URL == "" {
			continue
		}
		if strings.HasPrefix(en.Type, "image/") {
			return en.URL
		}
		// 没声明类型时看 URL 长得像不像图片
		if en.Type == "" && imageExtRe.MatchString(en.URL) {
			return en.URL
		}
	}
	return ""
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	out := htmlTagRe.ReplaceAllString(s, " ")
	out = html.UnescapeString(out)
	return strings.Join(strings.Fields(out), " ")
}
