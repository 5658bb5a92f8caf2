package source

// Source 描述一个 RSS 新闻源，进程启动时加载，之后只读
type Source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	FeedURL  string `json:"feedUrl"`
	Country  string `json:"country"` // israel / iran / international
	Language string `json:"language"`
	Bias     string `json:"bias,omitempty"` // left / center-left / center / center-right / right
}

// Registry 是静态的源列表，不提供任何修改入口
type Registry struct {
	sources []*Source
	byID    map[string]*Source
}

func NewRegistry(sources []*Source) *Registry {
	byID := make(map[string]*Source, len(sources))
	for _, s := range sources {
		byID[s.ID] = s
	}
	return &Registry{sources: sources, byID: byID}
}

// All 返回注册顺序的全部源
func (r *Registry) All() []*Source {
	return r.sources
}

func (r *Registry) ByID(id string) (*Source, bool) {
	s, ok := r.byID[id]
	return s, ok
}

func (r *Registry) ByCountry(country string) []*Source {
	out := make([]*Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Country == country {
			out = append(out, s)
		}
	}
	return out
}

// DefaultSources 内置的以色列 / 伊朗 / 国际新闻源
func DefaultSources() []*Source {
	return []*Source{
		// Israeli sources
		{
			ID:       "jpost",
			Name:     "The Jerusalem Post",
			URL:      "https://www.jpost.com",
			FeedURL:  "https://www.jpost.com/rss",
			Country:  "israel",
			Language: "en",
			Bias:     "center-right",
		},
		{
			ID:       "timesofisrael",
			Name:     "Times of Israel",
			URL:      "https://www.timesofisrael.com",
			FeedURL:  "https://www.timesofisrael.com/feed/",
			Country:  "israel",
			Language: "en",
			Bias:     "center",
		},
		{
			ID:       "haaretz",
			Name:     "Haaretz",
			URL:      "https://www.haaretz.com",
			FeedURL:  "https://www.haaretz.com/cmlink/1.5474345",
			Country:  "israel",
			Language: "en",
			Bias:     "center-left",
		},

		// Iranian sources
		{
			ID:       "tasnim",
			Name:     "Tasnim News Agency",
			URL:      "https://www.tasnimnews.com",
			FeedURL:  "https://www.tasnimnews.com/en/rss",
			Country:  "iran",
			Language: "en",
			Bias:     "right",
		},
		{
			ID:       "mehrnews",
			Name:     "Mehr News Agency",
			URL:      "https://en.mehrnews.com",
			FeedURL:  "https://en.mehrnews.com/rss",
			Country:  "iran",
			Language: "en",
			Bias:     "right",
		},

		// International sources
		{
			ID:       "aljazeera",
			Name:     "Al Jazeera",
			URL:      "https://www.aljazeera.com",
			FeedURL:  "https://www.aljazeera.com/xml/rss/all.xml",
			Country:  "international",
			Language: "en",
			Bias:     "center-left",
		},
		{
			ID:       "bbc",
			Name:     "BBC Middle East",
			URL:      "https://www.bbc.com",
			FeedURL:  "http://feeds.bbci.co.uk/news/world/middle_east/rss.xml",
			Country:  "international",
			Language: "en",
			Bias:     "center",
		},
		{
			ID:       "reuters",
			Name:     "Reuters Middle East",
			URL:      "https://www.reuters.com",
			FeedURL:  "https://www.reuters.com/rssFeed/middleEastNews",
			Country:  "international",
			Language: "en",
			Bias:     "center",
		},
		{
			ID:       "france24",
			Name:     "France 24",
			URL:      "https://www.france24.com",
			FeedURL:  "https://www.france24.com/en/middle-east/rss",
			Country:  "international",
			Language: "en",
			Bias:     "center",
		},
		{
			ID:       "cnn",
			Name:     "CNN International",
			URL:      "https://www.cnn.com",
			FeedURL:  "http://rss.cnn.com/rss/edition_meast.rss",
			Country:  "international",
			Language: "en",
			Bias:     "center-left",
		},
	}
}
