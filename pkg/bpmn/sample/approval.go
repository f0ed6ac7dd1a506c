package sample

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
)

// ApprovalProcess builds a simple document approval diagram: a message start
// event, a user review task, an exclusive decision gateway, and two service
// notification tasks leading to separate end events. A data object tracks
// the document state and an annotation documents the process.
func ApprovalProcess() *model.Diagram {
	diagram := model.NewDiagram("simple_approval_process", "Simple Document Approval Process")
	diagram.CreatedBy = "bpmnlint"

	proc := model.NewProcess("approval_process", "Document Approval Process")
	proc.IsExecutable = true
	proc.ProcessType = model.ProcessPrivate

	start := model.NewEvent("start_document_request", "Document Request Received", model.EventStart)
	start.SetMessageTrigger("document_request")

	review := model.NewTask("review_document", "Review Document", model.TaskUser)
	review.Assignee = "reviewer"
	review.AddCandidateGroup("reviewers")
	review.SetPosition(150, 100)
	review.SetDimensions(100, 80)

	decision := model.NewGateway("approval_decision", "Approval Decision", model.GatewayExclusive)
	decision.Direction = model.DirectionDiverging
	decision.SetPosition(300, 100)

	notifyApproval := model.NewTask("notify_approval", "Notify Approval", model.TaskService)
	notifyApproval.Implementation = "email_service"

	notifyRejection := model.NewTask("notify_rejection", "Notify Rejection", model.TaskService)
	notifyRejection.Implementation = "email_service"

	endApproved := model.NewEvent("end_approved", "Document Approved", model.EventEnd)
	endRejected := model.NewEvent("end_rejected", "Document Rejected", model.EventEnd)

	document := model.NewDataObject("document", "Document")
	document.State = "Under Review"
	document.ValidStates = []string{"Draft", "Under Review", "Approved", "Rejected"}

	note := model.NewTextAnnotation("process_note",
		"Documents are reviewed by designated reviewers who approve or reject them.")

	proc.AddEvent(start)
	proc.AddEvent(endApproved)
	proc.AddEvent(endRejected)
	proc.AddTask(review)
	proc.AddTask(notifyApproval)
	proc.AddTask(notifyRejection)
	proc.AddGateway(decision)
	proc.AddDataObject(document)
	proc.TextAnnotations = append(proc.TextAnnotations, note)

	proc.AddSequenceFlow(model.NewSequenceFlow("f1", "start_document_request", "review_document"))
	proc.AddSequenceFlow(model.NewSequenceFlow("f2", "review_document", "approval_decision"))

	approved := model.NewSequenceFlow("f3", "approval_decision", "notify_approval")
	approved.SetCondition("${approved == true}")
	proc.AddSequenceFlow(approved)

	rejected := model.NewSequenceFlow("f4", "approval_decision", "notify_rejection")
	rejected.SetCondition("${approved == false}")
	proc.AddSequenceFlow(rejected)

	proc.AddSequenceFlow(model.NewSequenceFlow("f5", "notify_approval", "end_approved"))
	proc.AddSequenceFlow(model.NewSequenceFlow("f6", "notify_rejection", "end_rejected"))

	proc.AddAssociation(model.NewAssociation("a1", "review_document", "document"))
	proc.AddAssociation(model.NewAssociation("a2", "process_note", "review_document"))

	diagram.AddProcess(proc)
	return diagram
}
