package leetcode

// listQuery pages through the compensation category, newest first. The
// listing carries enough metadata to decide whether the full article is
// worth fetching.
const listQuery = `
query discussPostItems($orderBy: ArticleOrderByEnum, $keywords: [String]!, $tagSlugs: [String!], $skip: Int, $first: Int) {
  ugcArticleDiscussionArticles(orderBy: $orderBy, keywords: $keywords, tagSlugs: $tagSlugs, skip: $skip, first: $first) {
    totalNum
    edges {
      node {
        topicId
        title
        createdAt
        hitCount
        reactions {
          count
          reactionType
        }
        topic {
          id
          commentCount
        }
      }
    }
  }
}`

// detailQuery fetches the full article body for one listing entry.
const detailQuery = `
query discussPostDetail($topicId: ID!) {
  ugcArticleDiscussionArticle(topicId: $topicId) {
    topicId
    title
    content
    createdAt
    hitCount
    reactions {
      count
      reactionType
    }
    topic {
      id
      commentCount
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type reaction struct {
	Count        int    `json:"count"`
	ReactionType string `json:"reactionType"`
}

type topicNode struct {
	ID           int `json:"id"`
	CommentCount int `json:"commentCount"`
}

type articleNode struct {
	TopicID   int64      `json:"topicId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt string     `json:"createdAt"`
	HitCount  int        `json:"hitCount"`
	Reactions []reaction `json:"reactions"`
	Topic     topicNode  `json:"topic"`
}

type listResponse struct {
	Data struct {
		Articles struct {
			TotalNum int `json:"totalNum"`
			Edges    []struct {
				Node articleNode `json:"node"`
			} `json:"edges"`
		} `json:"ugcArticleDiscussionArticles"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

type detailResponse struct {
	Data struct {
		Article *articleNode `json:"ugcArticleDiscussionArticle"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// voteCount reduces the reaction list to a single score. Upvotes count
// positively, downvote-style reactions negatively, the rest are neutral.
func (n *articleNode) voteCount() int {
	total := 0
	for _, r := range n.Reactions {
		switch r.ReactionType {
		case "UPVOTE":
			total += r.Count
		case "DOWNVOTE", "THUMBS_DOWN":
			total -= r.Count
		}
	}
	return total
}
