package orbital

// The update queue is a singly-linked intrusive list through each
// Object's Integration.updateNext field, kept sorted so the head always
// has the smallest update timer. It contains exactly the objects whose
// Validity is Valid and which are not the root (core spec §4.7).

// updateQueuePushFront inserts obj at the head of the queue in O(1).
func (c *Context) updateQueuePushFront(obj ObjectHandle) {
	o := c.objects.Get(obj.id)
	if c.updateQueueFront == NullNode {
		c.updateQueueFront = obj.id
		o.Integration.updateNext = NullNode
		return
	}
	o.Integration.updateNext = c.updateQueueFront
	c.updateQueueFront = obj.id
}

// updateQueueRemove unlinks obj, which must be present in the queue.
func (c *Context) updateQueueRemove(obj ObjectHandle) {
	invariant(c.updateQueueFront != NullNode, "orbital: attempting to remove item from empty update queue")
	if c.updateQueueFront == obj.id {
		c.updateQueueFront = c.objects.Get(obj.id).Integration.updateNext
		c.objects.Get(obj.id).Integration.updateNext = NullNode
		return
	}
	item := c.updateQueueFront
	next := c.objects.Get(item).Integration.updateNext
	for next != obj.id {
		invariant(next != NullNode, "orbital: updateQueueRemove could not find the given object in the update queue")
		item = next
		next = c.objects.Get(next).Integration.updateNext
	}
	c.objects.Get(item).Integration.updateNext = c.objects.Get(obj.id).Integration.updateNext
	c.objects.Get(obj.id).Integration.updateNext = NullNode
}

// updateQueueSafeRemove removes obj if present, reporting whether it
// did anything.
func (c *Context) updateQueueSafeRemove(obj ObjectHandle) bool {
	if c.updateQueueFront == NullNode {
		return false
	}
	if c.updateQueueFront == obj.id {
		c.updateQueueFront = c.objects.Get(obj.id).Integration.updateNext
		c.objects.Get(obj.id).Integration.updateNext = NullNode
		return true
	}
	item := c.updateQueueFront
	next := c.objects.Get(item).Integration.updateNext
	for next != NullNode {
		if next == obj.id {
			c.objects.Get(item).Integration.updateNext = c.objects.Get(obj.id).Integration.updateNext
			c.objects.Get(obj.id).Integration.updateNext = NullNode
			return true
		}
		item = next
		next = c.objects.Get(next).Integration.updateNext
	}
	return false
}

// updateQueueSortFront assumes only the head's timer was just mutated
// and bubbles it backward until order is restored.
func (c *Context) updateQueueSortFront() {
	invariant(c.updateQueueFront != NullNode, "orbital: attempting to sort empty update queue")

	head := c.updateQueueFront
	headTimer := c.objects.Get(head).Integration.UpdateTimer

	item := c.objects.Get(head).Integration.updateNext
	if item == NullNode {
		return
	}
	if headTimer < c.objects.Get(item).Integration.UpdateTimer {
		return
	}
	c.updateQueueFront = item

	next := c.objects.Get(item).Integration.updateNext
	for next != NullNode {
		if headTimer < c.objects.Get(next).Integration.UpdateTimer {
			break
		}
		item = next
		next = c.objects.Get(next).Integration.updateNext
	}
	c.objects.Get(item).Integration.updateNext = head
	c.objects.Get(head).Integration.updateNext = next
}
