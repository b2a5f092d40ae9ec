package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jdavidberger/depthai-ros/internal/bridge"
	"github.com/jdavidberger/depthai-ros/internal/depthai"
)

// SocketInput selects a camera by board socket name.
type SocketInput struct {
	Socket string `path:"socket" example:"CAM_A" doc:"Camera board socket"`
}

// CameraControlResponse returns the live configuration snapshot.
type CameraControlResponse struct {
	Body depthai.CameraControl
}

// CameraControlInput pushes a partial configuration update; the field mask
// selects which values apply.
type CameraControlInput struct {
	SocketInput
	Body depthai.CameraControl
}

// RegionInput pushes an auto-exposure or auto-focus target rectangle.
type RegionInput struct {
	SocketInput
	Body bridge.RegionOfInterest
}

// StereoConfigResponse returns the stereo matcher snapshot.
type StereoConfigResponse struct {
	Body depthai.RawStereoDepthConfig
}

// StereoConfigInput replaces the stereo matcher configuration.
type StereoConfigInput struct {
	Body depthai.RawStereoDepthConfig
}

func (s *Server) cameraServer(socketName string) (*bridge.CameraControlServer, error) {
	socket, err := depthai.ParseSocket(socketName)
	if err != nil {
		return nil, huma.Error404NotFound("unknown socket", err)
	}
	srv := s.bridge.CameraServer(socket)
	if srv == nil {
		return nil, huma.Error404NotFound("no control server for socket " + socketName)
	}
	return srv, nil
}

func (s *Server) registerControlRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-camera-control",
		Method:      http.MethodGet,
		Path:        "/api/cameras/{socket}/control",
		Summary:     "Get Camera Control",
		Description: "Read the live configuration snapshot of one camera node",
		Tags:        []string{"control"},
		Errors:      []int{404},
	}, func(_ context.Context, in *SocketInput) (*CameraControlResponse, error) {
		srv, err := s.cameraServer(in.Socket)
		if err != nil {
			return nil, err
		}
		return &CameraControlResponse{Body: srv.Current()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "put-camera-control",
		Method:      http.MethodPut,
		Path:        "/api/cameras/{socket}/control",
		Summary:     "Push Camera Control",
		Description: "Push a configuration update through the same path as external control messages",
		Tags:        []string{"control"},
		Errors:      []int{404, 500},
	}, func(_ context.Context, in *CameraControlInput) (*CameraControlResponse, error) {
		srv, err := s.cameraServer(in.Socket)
		if err != nil {
			return nil, err
		}
		if err := srv.Apply(in.Body); err != nil {
			return nil, huma.Error500InternalServerError("apply failed", err)
		}
		return &CameraControlResponse{Body: srv.Current()}, nil
	})

	for _, kind := range []string{"ae", "af"} {
		kind := kind
		huma.Register(s.api, huma.Operation{
			OperationID: "push-camera-" + kind + "-region",
			Method:      http.MethodPost,
			Path:        "/api/cameras/{socket}/" + kind + "_bbox",
			Summary:     "Push " + strings.ToUpper(kind) + " Region Of Interest",
			Description: "Push a target rectangle (center plus size) steering the matching auto algorithm",
			Tags:        []string{"control"},
			Errors:      []int{404, 500},
		}, func(_ context.Context, in *RegionInput) (*CameraControlResponse, error) {
			srv, err := s.cameraServer(in.Socket)
			if err != nil {
				return nil, err
			}
			if err := srv.ApplyRegion(kind, in.Body); err != nil {
				return nil, huma.Error500InternalServerError("apply failed", err)
			}
			return &CameraControlResponse{Body: srv.Current()}, nil
		})
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-stereo-config",
		Method:      http.MethodGet,
		Path:        "/api/stereo/config",
		Summary:     "Get Stereo Config",
		Tags:        []string{"control"},
		Errors:      []int{404},
	}, func(_ context.Context, _ *struct{}) (*StereoConfigResponse, error) {
		srv := s.bridge.StereoServer()
		if srv == nil {
			return nil, huma.Error404NotFound("no stereo node in pipeline")
		}
		return &StereoConfigResponse{Body: srv.Current()}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "put-stereo-config",
		Method:      http.MethodPut,
		Path:        "/api/stereo/config",
		Summary:     "Push Stereo Config",
		Tags:        []string{"control"},
		Errors:      []int{404, 500},
	}, func(_ context.Context, in *StereoConfigInput) (*StereoConfigResponse, error) {
		srv := s.bridge.StereoServer()
		if srv == nil {
			return nil, huma.Error404NotFound("no stereo node in pipeline")
		}
		if err := srv.Apply(in.Body); err != nil {
			return nil, huma.Error500InternalServerError("apply failed", err)
		}
		return &StereoConfigResponse{Body: srv.Current()}, nil
	})
}
