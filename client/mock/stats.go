package mock

import (
	"net/http"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func (b *Backend) calendar(w http.ResponseWriter, r *http.Request, userID int) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "from/to parameters are required",
			"details": map[string]any{"from": from, "to": to},
		})
		return
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"from": []string{"Invalid date."}})
		return
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"to": []string{"Invalid date."}})
		return
	}
	b.mux.Lock()
	defer b.mux.Unlock()
	activity := map[string]int{}
	completion := map[string]int{}
	for _, p := range b.posts {
		day := p.createdAt.UTC().Format(dateLayout)
		if p.author != userID || day < start.Format(dateLayout) || day > end.Format(dateLayout) {
			continue
		}
		activity[day]++
		if p.kind == "checklist" {
			for _, item := range p.checklist {
				if item.Done {
					completion[day]++
				}
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activity":   pairs(activity, activity),
		"completion": pairs(completion, activity),
		"meta": map[string]any{
			"activity_label":   "posts",
			"completion_label": "completed checklist items",
			"scope":            "me",
		},
	})
}

// pairs renders counts as sorted [day, n] pairs over the union of both key sets
func pairs(counts, days map[string]int) [][]any {
	keys := map[string]bool{}
	for k := range counts {
		keys[k] = true
	}
	for k := range days {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	ret := make([][]any, 0, len(sorted))
	for _, k := range sorted {
		ret = append(ret, []any{k, counts[k]})
	}
	return ret
}
