package sample

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
)

// Collaboration builds a two-participant purchase order collaboration:
// a customer pool and a supplier pool, each executing its own process,
// exchanging the order and the confirmation over message flows. The
// supplier process is partitioned into sales and warehouse lanes.
func Collaboration() *model.Diagram {
	diagram := model.NewDiagram("purchase_collaboration", "Purchase Order Collaboration")

	customer := customerProcess()
	supplier := supplierProcess()
	diagram.AddProcess(customer)
	diagram.AddProcess(supplier)

	customerPool := model.NewPool("customer_pool", "Customer", customer.ID)
	customerPool.IsExecutable = true

	supplierPool := model.NewPool("supplier_pool", "Supplier", supplier.ID)
	supplierPool.IsExecutable = true

	sales := model.NewLane("supplier_sales", "Sales")
	sales.AddFlowNode("supplier_start")
	sales.AddFlowNode("confirm_order")
	warehouse := model.NewLane("supplier_warehouse", "Warehouse")
	warehouse.AddFlowNode("ship_goods")
	warehouse.AddFlowNode("supplier_end")
	supplierPool.AddLane(sales)
	supplierPool.AddLane(warehouse)

	diagram.AddPool(customerPool)
	diagram.AddPool(supplierPool)

	order := model.NewMessageFlow("mf_order", "create_purchase_order", "supplier_start")
	order.MessageRef = "purchase_order"
	diagram.AddMessageFlow(order)

	confirmation := model.NewMessageFlow("mf_confirmation", "confirm_order", "wait_confirmation")
	confirmation.MessageRef = "order_confirmation"
	diagram.AddMessageFlow(confirmation)

	return diagram
}

func customerProcess() *model.Process {
	proc := model.NewProcess("customer_process", "Customer Purchase Process")
	proc.IsExecutable = true

	start := model.NewEvent("customer_start", "Need Identified", model.EventStart)

	createOrder := model.NewTask("create_purchase_order", "Create Purchase Order", model.TaskUser)

	wait := model.NewEvent("wait_confirmation", "Wait for Confirmation", model.EventIntermediate)
	wait.SetMessageTrigger("order_confirmation")

	receive := model.NewTask("receive_goods", "Receive Goods", model.TaskUser)

	end := model.NewEvent("customer_end", "Order Completed", model.EventEnd)

	proc.AddEvent(start)
	proc.AddEvent(wait)
	proc.AddEvent(end)
	proc.AddTask(createOrder)
	proc.AddTask(receive)

	proc.AddSequenceFlow(model.NewSequenceFlow("cf1", "customer_start", "create_purchase_order"))
	proc.AddSequenceFlow(model.NewSequenceFlow("cf2", "create_purchase_order", "wait_confirmation"))
	proc.AddSequenceFlow(model.NewSequenceFlow("cf3", "wait_confirmation", "receive_goods"))
	proc.AddSequenceFlow(model.NewSequenceFlow("cf4", "receive_goods", "customer_end"))

	return proc
}

func supplierProcess() *model.Process {
	proc := model.NewProcess("supplier_process", "Supplier Order Processing")
	proc.IsExecutable = true

	start := model.NewEvent("supplier_start", "Order Received", model.EventStart)
	start.SetMessageTrigger("purchase_order")

	confirm := model.NewTask("confirm_order", "Confirm Order", model.TaskService)
	confirm.Implementation = "order_service"

	ship := model.NewTask("ship_goods", "Ship Goods", model.TaskManual)

	end := model.NewEvent("supplier_end", "Order Fulfilled", model.EventEnd)

	proc.AddEvent(start)
	proc.AddEvent(end)
	proc.AddTask(confirm)
	proc.AddTask(ship)

	proc.AddSequenceFlow(model.NewSequenceFlow("sf1", "supplier_start", "confirm_order"))
	proc.AddSequenceFlow(model.NewSequenceFlow("sf2", "confirm_order", "ship_goods"))
	proc.AddSequenceFlow(model.NewSequenceFlow("sf3", "ship_goods", "supplier_end"))

	return proc
}
