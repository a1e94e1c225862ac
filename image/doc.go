// Package image is the image, video and LoRA facade of the FlexStack
// platform.
//
// Creation calls return a task handle ("task_id" in the response body)
// that is later exchanged for a result. Two result shapes coexist
// upstream: the SD/SDXL and LoRA-trainer result endpoints take the
// handle in a POSTed JSON body, while text-to-image and text-to-video
// results are fetched with a GET on a handle-suffixed path. The client
// mirrors both shapes rather than unifying them.
package image
