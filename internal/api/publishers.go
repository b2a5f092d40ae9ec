package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// PublisherInfo describes one active publishing channel.
type PublisherInfo struct {
	Channel string `json:"channel" example:"stereo/depth" doc:"Published channel name"`
	FrameID string `json:"frame_id,omitempty" example:"dai_sim0001_CAM_C" doc:"Frame name in intrinsics metadata"`
	Width   int    `json:"width,omitempty" example:"1280" doc:"Intrinsics resolution width"`
	Height  int    `json:"height,omitempty" example:"720" doc:"Intrinsics resolution height"`
}

// PublishersResponse lists every channel created by the output-mapping pass.
type PublishersResponse struct {
	Body struct {
		Publishers []PublisherInfo `json:"publishers"`
	}
}

func (s *Server) registerPublisherRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-publishers",
		Method:      http.MethodGet,
		Path:        "/api/publishers",
		Summary:     "List Publishers",
		Description: "List every publishing channel the bridge created for the running pipeline",
		Tags:        []string{"publishers"},
	}, func(_ context.Context, _ *struct{}) (*PublishersResponse, error) {
		resp := &PublishersResponse{}
		for _, pub := range s.bridge.Publishers() {
			info := PublisherInfo{Channel: pub.Channel()}
			if ci := pub.CameraInfo(); ci != nil {
				info.FrameID = ci.FrameID
				info.Width = ci.Width
				info.Height = ci.Height
			}
			resp.Body.Publishers = append(resp.Body.Publishers, info)
		}
		return resp, nil
	})
}
