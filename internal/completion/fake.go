package completion

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic content for offline use and tests. JSON
// requests get a well-formed five-axis review payload; everything else gets a
// canned stakeholder reply.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeCompletion" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(ctx context.Context, req Request) (Response, error) {
	if req.JSONOnly {
		obj := map[string]any{
			"scores": map[string]any{
				"insight":         70,
				"logic":           70,
				"aiFirst":         70,
				"professionalism": 70,
				"feasibility":     70,
			},
			"feedback": map[string]any{
				"insight":         "fake insight feedback",
				"logic":           "fake logic feedback",
				"aiFirst":         "fake aiFirst feedback",
				"professionalism": "fake professionalism feedback",
				"feasibility":     "fake feasibility feedback",
			},
			"suggestions": []string{"fake suggestion"},
			"overall":     "fake overall summary",
		}
		b, _ := json.Marshal(obj)
		return Response{Content: string(b)}, nil
	}
	return Response{Content: "Well, mostly it is the turnaround time. Everything goes through people today and it just piles up."}, nil
}
